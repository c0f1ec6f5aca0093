package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long:  "Lists every registered language with its identifiers, extensions and whether its grammar can be loaded.",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	r := newEngine(root, cfg).Registry()

	for _, l := range r.Languages() {
		status := fmt.Sprintf("%s✓%s", colorGreen, colorReset)
		if !r.Available(l) {
			status = fmt.Sprintf("%s✗ grammar not installed%s", colorYellow, colorReset)
		}
		fmt.Printf("  %s%-12s%s %-28s %-24s %s\n",
			colorCyan, l.Name(), colorReset,
			strings.Join(l.IDs(), ","),
			strings.Join(l.Extensions(), " "),
			status)
	}

	if installed := r.Loader().InstalledGrammars(); len(installed) > 0 {
		fmt.Printf("\n  %sinstalled grammars:%s %s\n", colorGray, colorReset, strings.Join(installed, ", "))
	}
	return nil
}
