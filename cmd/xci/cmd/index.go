package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the current project",
	Long: "Scans all source files, renders their skeletons and symbol tables, and stores\n" +
		"them in .xci/xci.db. Unchanged files are skipped unless --force is given.",
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "Discard stored artifacts and reindex everything")
}

func runIndex(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	start := time.Now()
	index := a.Index
	if indexForce {
		index = a.Reindex
	}
	result, err := index(cmd.Context())
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	fmt.Println(formatIndexResult(result, time.Since(start)))
	return nil
}
