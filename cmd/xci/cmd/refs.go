package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var refsJSON bool

var refsCmd = &cobra.Command{
	Use:   "refs NAME...",
	Short: "Find identifiers across indexed files",
	Long: "Scans every indexed file for whole-identifier occurrences of the given names in a\n" +
		"single pass. Definition sites recorded at index time are marked with *.",
	Args: cobra.MinimumNArgs(1),
	RunE: runRefs,
}

func init() {
	refsCmd.Flags().BoolVar(&refsJSON, "json", false, "Output as JSON")
}

func runRefs(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	occ, err := a.Refs(args)
	if err != nil {
		return err
	}
	if refsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(occ)
	}
	if len(occ) == 0 {
		fmt.Println("no matches (is the project indexed?)")
		return nil
	}
	for _, o := range occ {
		mark := " "
		if o.Defines {
			mark = colorGreen + "*" + colorReset
		}
		fmt.Printf("%s %s%s:%d:%d%s  %s\n", mark, colorCyan, o.Path, o.Line, o.Column, colorReset, o.Text)
	}
	return nil
}
