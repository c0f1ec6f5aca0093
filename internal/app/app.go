// Package app wires together all adapters and domain logic.
// It provides lifecycle management for an xci project: open, index, watch,
// assemble context, close.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/corey/xci/internal/adapters/bbolt"
	fsw "github.com/corey/xci/internal/adapters/fsnotify"
	"github.com/corey/xci/internal/adapters/treesitter"
	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/ports"
)

// App holds the wired components of one project.
type App struct {
	ProjectRoot string
	ProjectID   string
	Paths       *Paths
	Config      *Config
	Logger      *slog.Logger

	Registry  *treesitter.Registry
	Engine    *treesitter.Engine
	Store     *bbolt.Store
	Scanner   *Scanner
	Indexer   *Indexer
	Assembler *Assembler
}

// Options configures New.
type Options struct {
	ProjectRoot string       // required
	ProjectID   string       // default: base name of the root
	Config      *Config      // default: loaded from .xci/config.yaml
	Logger      *slog.Logger // default: discard
}

// New creates an App with all dependencies wired. It creates .xci/ and opens
// the artifact store.
func New(opts Options) (*App, error) {
	if opts.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	root, err := filepath.Abs(opts.ProjectRoot)
	if err != nil {
		return nil, err
	}
	if opts.ProjectID == "" {
		opts.ProjectID = filepath.Base(root)
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	paths := NewPaths(root)
	if n, err := paths.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", paths.Root, err)
	} else if n > 0 {
		logger.Info("migrated state files", "count", n)
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create %s: %w", paths.Root, err)
	}

	cfg := opts.Config
	if cfg == nil {
		if cfg, err = LoadConfig(paths.Config); err != nil {
			return nil, err
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := treesitter.NewRegistry()
	registry.SetGrammarPaths(append(append([]string(nil), cfg.GrammarPaths...), treesitter.DefaultGrammarPaths(root)...))
	engine := treesitter.NewEngine(registry)

	scanner, err := NewScanner(cfg, func(path string) bool {
		_, ok := engine.LanguageFor(path)
		return ok
	})
	if err != nil {
		return nil, err
	}

	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{
		ProjectRoot: root,
		ProjectID:   opts.ProjectID,
		Paths:       paths,
		Config:      cfg,
		Logger:      logger,
		Registry:    registry,
		Engine:      engine,
		Store:       store,
		Scanner:     scanner,
	}
	a.Indexer = NewIndexer(IndexerConfig{
		Root:      root,
		ProjectID: a.ProjectID,
		Store:     store,
		Engine:    engine,
		Scanner:   scanner,
		Options:   cfg.RenderOptions(),
		Workers:   cfg.Workers,
		Logger:    logger,
	})
	a.Assembler = NewAssembler(root, engine, cfg.RenderOptions(), logger)
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Index brings the stored artifacts up to date with the project files.
func (a *App) Index(ctx context.Context) (*IndexResult, error) {
	return a.Indexer.IndexAll(ctx)
}

// Reindex discards every stored artifact and indexes from scratch.
func (a *App) Reindex(ctx context.Context) (*IndexResult, error) {
	if err := a.Store.DeleteProject(a.ProjectID); err != nil {
		return nil, fmt.Errorf("wipe project: %w", err)
	}
	return a.Indexer.IndexAll(ctx)
}

// Artifact returns the stored artifact of a project-relative path, or nil.
func (a *App) Artifact(rel string) (*ports.FileArtifact, error) {
	return a.Store.GetArtifact(a.ProjectID, filepath.ToSlash(rel))
}

// Artifacts returns every stored artifact in path order.
func (a *App) Artifacts() ([]*ports.FileArtifact, error) {
	return a.Store.ListArtifacts(a.ProjectID)
}

// Assemble renders chunks into a context block.
func (a *App) Assemble(chunks []chunk.CodeChunk) string {
	return a.Assembler.Assemble(chunks)
}

// Watch indexes the project once and then keeps it current until ctx is
// cancelled.
func (a *App) Watch(ctx context.Context) error {
	if _, err := a.Index(ctx); err != nil {
		return err
	}
	w, err := fsw.NewWatcher(
		fsw.WithIgnoreDirs(append([]string{treesitter.StateDirName}, a.Config.IgnoreDirs...)...),
		fsw.WithDebounce(a.Config.Debounce),
		fsw.WithLogger(a.Logger),
	)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	a.Logger.Info("watching", "root", a.ProjectRoot)
	return a.Indexer.Watch(ctx, w)
}

// Wipe deletes all stored artifacts of the project.
func (a *App) Wipe() error {
	return a.Store.DeleteProject(a.ProjectID)
}
