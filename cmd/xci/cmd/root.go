package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/xci/internal/adapters/treesitter"
	"github.com/corey/xci/internal/app"
)

var (
	noLineNumbers bool
	langFlag      string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "xci",
	Short: "xci: source skeletons and chunk completion",
	Long: "Renders files as line-numbered skeletons, extracts the definitions on given rows,\n" +
		"and expands the entities retrieved chunks land on. Works on Go, Python, JavaScript,\n" +
		"TypeScript, Rust and Java out of the box; more grammars load from .xci/grammars.",
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// loadConfig reads the project config and applies the global flags.
func loadConfig(root string) (*app.Config, error) {
	cfg, err := app.LoadConfig(app.NewPaths(root).Config)
	if err != nil {
		return nil, err
	}
	if noLineNumbers {
		cfg.LineNumbers = false
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger logs to stderr at the configured level.
func newLogger(cfg *app.Config) *slog.Logger {
	level, err := app.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return app.NewLogger(os.Stderr, level)
}

// newEngine builds an engine that also finds grammars installed for root.
func newEngine(root string, cfg *app.Config) *treesitter.Engine {
	r := treesitter.NewRegistry()
	r.SetGrammarPaths(append(append([]string(nil), cfg.GrammarPaths...), treesitter.DefaultGrammarPaths(root)...))
	return treesitter.NewEngine(r)
}

// readSource reads path and resolves its language from --lang or the
// file extension.
func readSource(e *treesitter.Engine, path string) (string, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if langFlag != "" {
		return langFlag, src, nil
	}
	lang, ok := e.LanguageFor(path)
	if !ok {
		return "", nil, fmt.Errorf("%w: cannot detect language of %s (use --lang)", treesitter.ErrUnsupportedLanguage, path)
	}
	return lang, src, nil
}

// openApp opens the project in the working directory.
func openApp() (*app.App, error) {
	root := projectRoot()
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	a, err := app.New(app.Options{ProjectRoot: root, Config: cfg, Logger: newLogger(cfg)})
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("cannot open project: %s", diagnoseDBLock(root))
		}
		return nil, err
	}
	return a, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.BoolVar(&noLineNumbers, "no-line-numbers", false, "Omit line numbers from rendered output")
	f.StringVar(&langFlag, "lang", "", "Language of the input file (default: from extension)")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(filemapCmd)
	rootCmd.AddCommand(definitionCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(hoverCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(refsCmd)
}
