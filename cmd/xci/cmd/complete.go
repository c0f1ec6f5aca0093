package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/xci/internal/app"
	"github.com/corey/xci/internal/domain/chunk"
)

var completeRoot string

var completeCmd = &cobra.Command{
	Use:   "complete CHUNKS.json",
	Short: "Expand retrieved chunks into whole entities",
	Long: "Reads a JSON array of chunks ({path, alias, snippet, start, end}; lines are\n" +
		"zero-based) from the file or stdin (\"-\") and prints one section per file: the\n" +
		"skeleton with every entity a chunk lands on expanded.",
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().StringVar(&completeRoot, "root", "", "Directory chunk paths are relative to (default: cwd)")
}

func runComplete(cmd *cobra.Command, args []string) error {
	chunks, err := readChunks(args[0])
	if err != nil {
		return err
	}

	root := completeRoot
	if root == "" {
		root = projectRoot()
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	as := app.NewAssembler(root, newEngine(root, cfg), cfg.RenderOptions(), newLogger(cfg))
	fmt.Print(as.Assemble(chunks))
	return nil
}

func readChunks(name string) ([]chunk.CodeChunk, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var chunks []chunk.CodeChunk
	if err := json.NewDecoder(r).Decode(&chunks); err != nil {
		return nil, fmt.Errorf("decode chunks: %w", err)
	}
	return chunks, nil
}
