package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	fsw "github.com/corey/xci/internal/adapters/fsnotify"
	"github.com/corey/xci/internal/domain/render"
)

// Config is the project configuration stored in .xci/config.yaml. Zero
// fields in the file fall back to DefaultConfig.
type Config struct {
	// LineNumbers prefixes rendered lines with their 1-based number.
	LineNumbers bool `yaml:"line_numbers"`
	// Indent is repeated once per nesting level in rendered output.
	Indent string `yaml:"indent"`

	// Workers bounds how many files are indexed concurrently.
	Workers int `yaml:"workers"`

	// Include and Exclude are slash-separated glob patterns matched against
	// paths relative to the project root. An empty Include matches every
	// file a grammar exists for.
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`

	// IgnoreDirs are directory names never descended into.
	IgnoreDirs []string `yaml:"ignore_dirs,omitempty"`

	// GrammarPaths are searched for dynamically loaded grammar libraries
	// before the project and global grammar directories.
	GrammarPaths []string `yaml:"grammar_paths,omitempty"`

	// Debounce coalesces bursts of file events in watch mode.
	Debounce time.Duration `yaml:"debounce"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

var (
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	opts := render.DefaultOptions()
	return &Config{
		LineNumbers: opts.LineNumbers,
		Indent:      opts.Indent,
		Workers:     runtime.GOMAXPROCS(0),
		IgnoreDirs:  append([]string(nil), fsw.DefaultIgnoreDirs...),
		Debounce:    fsw.DefaultDebounce,
		LogLevel:    "info",
	}
}

// LoadConfig reads the config at path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks field ranges and that every glob compiles.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce %s", ErrInvalidConfig, c.Debounce)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := compileGlobs(c.Include); err != nil {
		return fmt.Errorf("%w: include: %v", ErrInvalidConfig, err)
	}
	if _, err := compileGlobs(c.Exclude); err != nil {
		return fmt.Errorf("%w: exclude: %v", ErrInvalidConfig, err)
	}
	return nil
}

// RenderOptions returns the render options the config describes.
func (c *Config) RenderOptions() render.Options {
	return render.Options{LineNumbers: c.LineNumbers, Indent: c.Indent}
}

// ParseLevel maps a level name to its slog level. The empty string is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}
