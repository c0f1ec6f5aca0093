package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols FILE",
	Short: "List the definitions of a file's scope graph",
	Long:  "Prints one line per local definition: line:column [kind] name. Positions are 1-based.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func runSymbols(cmd *cobra.Command, args []string) error {
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
	syms, err := e.Symbols(lang, src)
	if err != nil {
		return err
	}
	if len(syms) == 0 {
		fmt.Println("(no symbols)")
		return nil
	}
	for _, s := range syms {
		fmt.Println(formatSymbol(s))
	}
	return nil
}
