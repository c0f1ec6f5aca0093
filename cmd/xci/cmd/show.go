package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var showSymbols bool

var showCmd = &cobra.Command{
	Use:   "show [PATH]",
	Short: "Print stored artifacts",
	Long:  "Prints the indexed skeleton of PATH, or lists every indexed file when PATH is omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showSymbols, "symbols", "s", false, "Also list the file's symbols")
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		all, err := a.Artifacts()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("no files indexed (run `xci index`)")
			return nil
		}
		for _, art := range all {
			fmt.Println(formatArtifactLine(art))
		}
		return nil
	}

	rel := args[0]
	if filepath.IsAbs(rel) {
		if r, err := filepath.Rel(a.ProjectRoot, rel); err == nil {
			rel = r
		}
	}
	art, err := a.Artifact(rel)
	if err != nil {
		return err
	}
	if art == nil {
		return fmt.Errorf("%s is not indexed", rel)
	}
	fmt.Print(art.Filemap)
	if showSymbols {
		fmt.Println()
		for _, s := range art.Symbols {
			fmt.Println(formatSymbol(s))
		}
	}
	return nil
}
