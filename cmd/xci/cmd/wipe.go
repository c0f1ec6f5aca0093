package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/xci/internal/app"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the stored index of the project",
	Long:  "Deletes every stored artifact of the project. config.yaml and grammars are kept.",
	Args:  cobra.NoArgs,
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	out := cmd.OutOrStdout()

	if _, err := os.Stat(app.NewPaths(root).DB); os.IsNotExist(err) {
		fmt.Fprintln(out, "nothing to wipe")
		return nil
	}
	prompt := fmt.Sprintf("Delete the xci index of %s?", filepath.Base(root))
	if !wipeForce && !confirm(cmd.InOrStdin(), out, prompt) {
		fmt.Fprintln(out, "cancelled")
		return nil
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	arts, err := a.Artifacts()
	if err != nil {
		return err
	}
	if err := a.Wipe(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%swiped%s %d artifacts\n", colorGreen, colorReset, len(arts))
	return nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
