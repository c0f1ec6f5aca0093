package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/corey/xci/internal/adapters/treesitter"
	"github.com/corey/xci/internal/domain/render"
	"github.com/corey/xci/internal/ports"
)

// IndexResult holds statistics from an IndexAll run.
type IndexResult struct {
	Files     int // files discovered
	Indexed   int // artifacts written
	Unchanged int // skipped because the content hash matched
	Skipped   int // too large or not parseable as their language
	Failed    int // read, render or store errors
	Symbols   int // symbols in the artifacts written
}

// fileOutcome is the result of indexing one file.
type fileOutcome int

const (
	outcomeIndexed fileOutcome = iota
	outcomeUnchanged
	outcomeSkipped
)

// Indexer renders the filemap and symbol table of every project file and
// persists them through ports.Storage. It is safe for concurrent use.
type Indexer struct {
	root      string
	projectID string
	store     ports.Storage
	engine    ports.Intelligence
	scanner   *Scanner
	opts      render.Options
	workers   int
	logger    *slog.Logger

	now func() time.Time
}

// IndexerConfig wires an Indexer.
type IndexerConfig struct {
	Root      string
	ProjectID string
	Store     ports.Storage
	Engine    ports.Intelligence
	Scanner   *Scanner
	Options   render.Options
	Workers   int
	Logger    *slog.Logger
}

// NewIndexer creates an indexer. Workers below 1 means one.
func NewIndexer(cfg IndexerConfig) *Indexer {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	// Watch events carry absolute paths.
	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}
	return &Indexer{
		root:      cfg.Root,
		projectID: cfg.ProjectID,
		store:     cfg.Store,
		engine:    cfg.Engine,
		scanner:   cfg.Scanner,
		opts:      cfg.Options,
		workers:   cfg.Workers,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// IndexAll indexes every discovered file and deletes artifacts whose file
// is no longer selected. Per-file failures are logged and counted; only
// discovery, storage listing and cancellation abort the run.
func (ix *Indexer) IndexAll(ctx context.Context) (*IndexResult, error) {
	files, err := ix.scanner.Scan(ix.root)
	if err != nil {
		return nil, err
	}

	result := &IndexResult{Files: len(files)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)
	for _, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, symbols, err := ix.indexFile(rel)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				ix.logger.Warn("index failed", "path", rel, "err", err)
				return nil
			}
			switch outcome {
			case outcomeIndexed:
				result.Indexed++
				result.Symbols += symbols
			case outcomeUnchanged:
				result.Unchanged++
			case outcomeSkipped:
				result.Skipped++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	if err := ix.prune(files); err != nil {
		return result, err
	}
	ix.logger.Info("index complete",
		"files", result.Files, "indexed", result.Indexed, "unchanged", result.Unchanged,
		"skipped", result.Skipped, "failed", result.Failed, "symbols", result.Symbols)
	return result, nil
}

// prune deletes stored artifacts for paths not in keep.
func (ix *Indexer) prune(keep []string) error {
	stored, err := ix.store.ListArtifacts(ix.projectID)
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	live := make(map[string]bool, len(keep))
	for _, rel := range keep {
		live[rel] = true
	}
	for _, a := range stored {
		if live[a.Path] {
			continue
		}
		if err := ix.store.DeleteArtifact(ix.projectID, a.Path); err != nil {
			return err
		}
		ix.logger.Debug("pruned", "path", a.Path)
	}
	return nil
}

// IndexFile indexes one file given by its path relative to the root.
// It reports whether an artifact was written.
func (ix *Indexer) IndexFile(rel string) (bool, error) {
	outcome, _, err := ix.indexFile(filepath.ToSlash(rel))
	return outcome == outcomeIndexed, err
}

func (ix *Indexer) indexFile(rel string) (fileOutcome, int, error) {
	lang, ok := ix.engine.LanguageFor(rel)
	if !ok {
		return outcomeSkipped, 0, nil
	}

	src, err := os.ReadFile(filepath.Join(ix.root, filepath.FromSlash(rel)))
	if err != nil {
		return 0, 0, err
	}
	if len(src) > treesitter.MaxFileSize {
		ix.logger.Debug("skipped large file", "path", rel, "size", len(src))
		return outcomeSkipped, 0, nil
	}

	hash := xxhash.Sum64(src)
	prev, err := ix.store.GetArtifact(ix.projectID, rel)
	if err != nil {
		return 0, 0, err
	}
	if prev != nil && prev.Hash == hash && prev.Language == lang {
		return outcomeUnchanged, 0, nil
	}

	filemap, err := ix.engine.Filemap(lang, src, ix.opts)
	if err != nil {
		if skippable(err) {
			ix.logger.Debug("skipped file", "path", rel, "err", err)
			return outcomeSkipped, 0, nil
		}
		return 0, 0, err
	}
	symbols, err := ix.engine.Symbols(lang, src)
	if err != nil {
		return 0, 0, err
	}

	a := &ports.FileArtifact{
		Path:      rel,
		Language:  lang,
		Hash:      hash,
		Size:      len(src),
		Filemap:   filemap,
		Symbols:   symbols,
		IndexedAt: ix.now().Unix(),
	}
	if err := ix.store.PutArtifact(ix.projectID, a); err != nil {
		return 0, 0, err
	}
	ix.logger.Debug("indexed", "path", rel, "symbols", len(symbols))
	return outcomeIndexed, len(symbols), nil
}

// skippable reports errors that mean the file cannot be parsed as its
// language rather than that something went wrong.
func skippable(err error) bool {
	return errors.Is(err, treesitter.ErrLanguageMismatch) ||
		errors.Is(err, treesitter.ErrParseTimeout) ||
		errors.Is(err, treesitter.ErrInvalidEncoding) ||
		errors.Is(err, treesitter.ErrFileTooLarge)
}

// Remove deletes the artifact of a file.
func (ix *Indexer) Remove(rel string) error {
	return ix.store.DeleteArtifact(ix.projectID, filepath.ToSlash(rel))
}

// OnFileChanged handles a create, modify or delete event for an absolute
// path: selected files are re-indexed, vanished ones are removed.
func (ix *Indexer) OnFileChanged(absPath string) {
	rel, err := filepath.Rel(ix.root, absPath)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if !ix.scanner.Match(rel) {
		return
	}

	if _, err := os.Stat(absPath); err != nil {
		if err := ix.Remove(rel); err != nil {
			ix.logger.Warn("remove failed", "path", rel, "err", err)
			return
		}
		ix.logger.Debug("removed", "path", rel)
		return
	}

	if _, err := ix.IndexFile(rel); err != nil {
		ix.logger.Warn("reindex failed", "path", rel, "err", err)
	}
}

// Watch re-indexes files as w reports changes until ctx is cancelled.
func (ix *Indexer) Watch(ctx context.Context, w ports.Watcher) error {
	if err := w.Watch(ix.root, ix.OnFileChanged); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}
