package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hoverCmd = &cobra.Command{
	Use:   "hover FILE",
	Short: "List hoverable identifier ranges",
	Args:  cobra.ExactArgs(1),
	RunE:  runHover,
}

func runHover(cmd *cobra.Command, args []string) error {
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
	ranges, err := e.HoverableRanges(lang, src)
	if err != nil {
		return err
	}
	for _, r := range ranges {
		fmt.Println(formatRange(r, src))
	}
	return nil
}
