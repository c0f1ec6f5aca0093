package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/xci/internal/app"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows project paths and the effective configuration. --init writes the defaults to .xci/config.yaml.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config file if none exists")
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)

	if configInit {
		if _, err := os.Stat(paths.Config); err == nil {
			return fmt.Errorf("%s already exists", paths.Config)
		}
		if err := app.DefaultConfig().Save(paths.Config); err != nil {
			return err
		}
		fmt.Printf("⚡ wrote %s\n", paths.Config)
		return nil
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	configStatus := fmt.Sprintf("%s(defaults)%s", colorGray, colorReset)
	if _, err := os.Stat(paths.Config); err == nil {
		configStatus = paths.Config
	}

	fmt.Printf("%s⚡ xci config%s\n", colorBold, colorReset)
	fmt.Printf("  Project:    %s\n", filepath.Base(root))
	fmt.Printf("  Root:       %s\n", root)
	fmt.Printf("  DB:         %s\n", paths.DB)
	fmt.Printf("  Config:     %s\n", configStatus)
	fmt.Printf("  Numbers:    %t\n", cfg.LineNumbers)
	fmt.Printf("  Indent:     %q\n", cfg.Indent)
	fmt.Printf("  Workers:    %d\n", cfg.Workers)
	fmt.Printf("  Debounce:   %s\n", cfg.Debounce)
	fmt.Printf("  Log level:  %s\n", cfg.LogLevel)
	if len(cfg.Include) > 0 {
		fmt.Printf("  Include:    %s\n", strings.Join(cfg.Include, " "))
	}
	if len(cfg.Exclude) > 0 {
		fmt.Printf("  Exclude:    %s\n", strings.Join(cfg.Exclude, " "))
	}
	fmt.Printf("  Grammars:   %s\n", strings.Join(newEngine(root, cfg).Registry().Loader().SearchPaths(), ", "))
	return nil
}
