//go:build !lean

package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/xci/internal/adapters/bbolt"
	"github.com/corey/xci/internal/adapters/treesitter"
	"github.com/corey/xci/internal/domain/render"
)

// newTestIndexer wires an indexer over root with a store outside of it.
func newTestIndexer(t *testing.T, root string) (*Indexer, *bbolt.Store) {
	t.Helper()
	store, err := bbolt.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	engine := treesitter.NewEngine(treesitter.NewRegistry())
	scanner, err := NewScanner(DefaultConfig(), func(path string) bool {
		_, ok := engine.LanguageFor(path)
		return ok
	})
	require.NoError(t, err)

	ix := NewIndexer(IndexerConfig{
		Root:      root,
		ProjectID: "test",
		Store:     store,
		Engine:    engine,
		Scanner:   scanner,
		Options:   render.DefaultOptions(),
		Workers:   4,
	})
	return ix, store
}

func TestIndexAll_Counts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":      "package main\n\nfunc Alpha() {}\nfunc Beta() {}\n",
		"b.go":      "package main\n\nfunc Gamma() {}\n",
		"README.md": "# readme\n",
	})
	ix, store := newTestIndexer(t, root)

	result, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 3, result.Symbols)
	assert.Zero(t, result.Failed)

	a, err := store.GetArtifact("test", "a.go")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "go", a.Language)
	assert.Contains(t, a.Filemap, "func Alpha() { ... }")
	require.Len(t, a.Symbols, 2)
	assert.Equal(t, "Alpha", a.Symbols[0].Name)
	assert.Equal(t, "function", a.Symbols[0].Kind)
	assert.NotZero(t, a.Hash)
	assert.NotZero(t, a.IndexedAt)
}

func TestIndexAll_SkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go": "package main\n\nfunc Alpha() {}\n",
		"b.go": "package main\n\nfunc Beta() {}\n",
	})
	ix, store := newTestIndexer(t, root)

	_, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	before, err := store.GetArtifact("test", "a.go")
	require.NoError(t, err)

	result, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 2, result.Unchanged)

	after, err := store.GetArtifact("test", "a.go")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Editing one file reindexes only that file.
	writeTree(t, root, map[string]string{"b.go": "package main\n\nfunc Beta() {}\nfunc Delta() {}\n"})
	result, err = ix.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 2, result.Symbols)
}

func TestIndexAll_PrunesDeletedFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go": "package main\n",
		"b.go": "package main\n",
	})
	ix, store := newTestIndexer(t, root)

	_, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))

	_, err = ix.IndexAll(context.Background())
	require.NoError(t, err)
	all, err := store.ListArtifacts("test")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a.go", all[0].Path)
}

func TestIndexAll_SkipsLargeFiles(t *testing.T) {
	root := t.TempDir()
	big := append([]byte("package main\n\nfunc BigFunc() {}\n"), bytes.Repeat([]byte("// pad\n"), treesitter.MaxFileSize/7+1)...)
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.go"), big, 0644))
	writeTree(t, root, map[string]string{"small.go": "package main\n\nfunc SmallFunc() {}\n"})
	ix, store := newTestIndexer(t, root)

	result, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 1, result.Skipped)

	a, err := store.GetArtifact("test", "big.go")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestIndexAll_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                    "package main\n",
		"node_modules/dep/index.js":  "function f() {}\n",
		"vendor/lib/lib.go":          "package lib\n",
		".xci/grammars/generated.py": "def f(): pass\n",
	})
	ix, _ := newTestIndexer(t, root)

	result, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Files)
}

func TestIndexAll_MultipleLanguages(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":    "package main\n\nfunc main() {}\n",
		"app.py":     "def run():\n    pass\n",
		"web/app.ts": "export function start(): void {}\n",
		"src/lib.rs": "fn add(a: i32) -> i32 { a }\n",
	})
	ix, store := newTestIndexer(t, root)

	result, err := ix.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Indexed)

	all, err := store.ListArtifacts("test")
	require.NoError(t, err)
	langs := make(map[string]string)
	for _, a := range all {
		langs[a.Path] = a.Language
	}
	assert.Equal(t, map[string]string{
		"app.py":     "python",
		"main.go":    "go",
		"src/lib.rs": "rust",
		"web/app.ts": "typescript",
	}, langs)
}

func TestIndexAll_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package main\n"})
	ix, _ := newTestIndexer(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ix.IndexAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOnFileChanged_NewFile(t *testing.T) {
	root := t.TempDir()
	ix, store := newTestIndexer(t, root)

	path := filepath.Join(root, "new.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc NewFunc() {}\n"), 0644))
	ix.OnFileChanged(path)

	a, err := store.GetArtifact("test", "new.go")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.Len(t, a.Symbols, 1)
	assert.Equal(t, "NewFunc", a.Symbols[0].Name)
}

func TestOnFileChanged_ModifyFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "mod.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc OldFunc() {}\n"), 0644))
	ix, store := newTestIndexer(t, root)
	ix.OnFileChanged(path)

	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc NewFunc() {}\n"), 0644))
	ix.OnFileChanged(path)

	a, err := store.GetArtifact("test", "mod.go")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.Len(t, a.Symbols, 1)
	assert.Equal(t, "NewFunc", a.Symbols[0].Name)
	assert.NotContains(t, a.Filemap, "OldFunc")
}

func TestOnFileChanged_DeleteFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "del.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc DelFunc() {}\n"), 0644))
	ix, store := newTestIndexer(t, root)
	ix.OnFileChanged(path)

	require.NoError(t, os.Remove(path))
	ix.OnFileChanged(path)

	a, err := store.GetArtifact("test", "del.go")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestOnFileChanged_UnsupportedExt(t *testing.T) {
	root := t.TempDir()
	ix, store := newTestIndexer(t, root)

	path := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
	ix.OnFileChanged(path)

	all, err := store.ListArtifacts("test")
	require.NoError(t, err)
	assert.Empty(t, all)
}

// fakeWatcher delivers events synchronously when the test fires them.
type fakeWatcher struct {
	onChange chan func(string)
	stopped  chan struct{}
}

func (w *fakeWatcher) Watch(_ string, onChange func(string)) error {
	w.onChange <- onChange
	return nil
}

func (w *fakeWatcher) Stop() error {
	close(w.stopped)
	return nil
}

func TestIndexer_WatchUntilCancelled(t *testing.T) {
	root := t.TempDir()
	ix, store := newTestIndexer(t, root)
	w := &fakeWatcher{onChange: make(chan func(string), 1), stopped: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ix.Watch(ctx, w) }()

	var fire func(string)
	select {
	case fire = <-w.onChange:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch never registered a callback")
	}

	path := filepath.Join(root, "w.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0644))
	fire(path)
	a, err := store.GetArtifact("test", "w.go")
	require.NoError(t, err)
	assert.NotNil(t, a)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	_, open := <-w.stopped
	assert.False(t, open)
}
