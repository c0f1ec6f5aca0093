// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It recursively watches a project directory, filters out directories that never hold
// project sources, and debounces rapid events (editors often write several times per save).
package fsnotify

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultIgnoreDirs are directory names never descended into.
var DefaultIgnoreDirs = []string{
	".git", ".hg", ".svn",
	".xci",
	"node_modules", ".venv", "__pycache__", "vendor",
	".idea", ".vscode",
	"dist", "build", "target", ".next",
}

// File names and suffixes that never trigger onChange.
var ignoreSuffixes = []string{".DS_Store", ".swp", ".swx", "~", ".tmp", ".pyc", ".o", ".so", ".dylib"}

// DefaultDebounce collapses bursts of events for one path.
const DefaultDebounce = 50 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithIgnoreDirs replaces the ignored directory names.
func WithIgnoreDirs(names ...string) Option {
	return func(w *Watcher) {
		w.ignoreDirs = make(map[string]bool, len(names))
		for _, n := range names {
			w.ignoreDirs[n] = true
		}
	}
}

// WithDebounce sets the per-path debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger routes watcher errors to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw         *fsnotify.Watcher
	ignoreDirs map[string]bool
	debounce   time.Duration
	logger     *slog.Logger

	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher.
func NewWatcher(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fw:       fw,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	WithIgnoreDirs(DefaultIgnoreDirs...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts monitoring projectPath recursively.
// onChange is called with the absolute path of each changed file.
func (w *Watcher) Watch(projectPath string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		return err
	}

	err = filepath.WalkDir(absPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}
		if path != absPath && w.ignoreDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
	if err != nil {
		return err
	}

	go w.loop(absPath, onChange)
	return nil
}

func (w *Watcher) loop(root string, onChange func(string)) {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name

			// New directories join the watch list.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !w.ignoreDirs[info.Name()] {
						if err := w.fw.Add(path); err != nil {
							w.logger.Warn("watch directory", "path", path, "err", err)
						}
					}
					continue
				}
			}

			if w.ignored(root, path) {
				continue
			}

			now := time.Now()
			if t, ok := last[path]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[path] = now

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				onChange(path)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// fsnotify recovers on its own; the error is only reported.
			w.logger.Warn("watch error", "err", err)

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// ignored reports whether a change to path must not trigger onChange.
func (w *Watcher) ignored(root, path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
		if w.ignoreDirs[part] {
			return true
		}
	}
	return false
}
