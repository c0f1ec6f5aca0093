package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/xci/internal/domain/chunk"
)

var (
	definitionRows []int
	definitionJSON bool
)

var definitionCmd = &cobra.Command{
	Use:   "definition FILE",
	Short: "Expand the entities declared on given rows",
	Long: "Renders the skeleton of FILE with every entity whose span covers one of --rows\n" +
		"expanded in full, then lists those definitions. Rows are 1-based.",
	Args: cobra.ExactArgs(1),
	RunE: runDefinition,
}

func init() {
	definitionCmd.Flags().IntSliceVarP(&definitionRows, "rows", "r", nil, "1-based rows to resolve (e.g. 5,9)")
	definitionCmd.Flags().BoolVar(&definitionJSON, "json", false, "Output as JSON")
	_ = definitionCmd.MarkFlagRequired("rows")
}

// definitionResult is the --json output.
type definitionResult struct {
	Output      string             `json:"output"`
	Definitions []chunk.Definition `json:"definitions"`
}

func runDefinition(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	e := newEngine(root, cfg)
	lang, src, err := readSource(e, args[0])
	if err != nil {
		return err
	}

	// Definitions carry the path relative to the project when the file is
	// inside it.
	path := args[0]
	if abs, err := filepath.Abs(path); err == nil {
		if rel, err := filepath.Rel(root, abs); err == nil && filepath.IsLocal(rel) {
			path = filepath.ToSlash(rel)
		}
	}
	out, defs, err := e.Definitions(lang, src, path, definitionRows, cfg.RenderOptions())
	if err != nil {
		return err
	}

	if definitionJSON {
		if defs == nil {
			defs = []chunk.Definition{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(definitionResult{Output: out, Definitions: defs})
	}

	fmt.Print(out)
	if len(defs) > 0 {
		fmt.Println()
		fmt.Print(formatDefinitions(defs))
	}
	return nil
}
