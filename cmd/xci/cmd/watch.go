package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index current as files change",
	Long:  "Indexes the project, then re-indexes files as they are created, modified or removed. Stops on Ctrl-C.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s⚡ watching %s%s (Ctrl-C to stop)\n", colorBold, a.ProjectRoot, colorReset)
	if err := a.Watch(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Println("stopped")
	return nil
}
