package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filemapCmd = &cobra.Command{
	Use:   "filemap FILE",
	Short: "Print the skeleton of a file",
	Long:  "Renders every top-level entity of FILE collapsed to its header. No index required.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilemap,
}

func runFilemap(cmd *cobra.Command, args []string) error {
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
	out, err := e.Filemap(lang, src, cfg.RenderOptions())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
