package bbolt

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/ports"
)

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func makeArtifact(path string) *ports.FileArtifact {
	return &ports.FileArtifact{
		Path:     path,
		Language: "go",
		Hash:     0xdeadbeefcafe,
		Size:     120,
		Filemap:  "1   package main\n3   func add(a, b int) int { ... }\n",
		Symbols: []ports.NamedSymbol{
			{Name: "add", Symbol: chunk.Symbol{Kind: "function", Range: chunk.TextRange{
				Start: chunk.Position{Byte: 19, Line: 2, Column: 5},
				End:   chunk.Position{Byte: 22, Line: 2, Column: 8},
			}}},
		},
		IndexedAt: 1760000000,
	}
}

func TestStore_PutGetArtifact_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	orig := makeArtifact("cmd/main.go")

	require.NoError(t, store.PutArtifact("proj", orig))
	got, err := store.GetArtifact("proj", "cmd/main.go")
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.GetArtifact("nobody", "a.go")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.PutArtifact("proj", makeArtifact("a.go")))
	got, err = store.GetArtifact("proj", "b.go")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PutRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.PutArtifact("proj", nil))
	assert.Error(t, store.PutArtifact("proj", &ports.FileArtifact{}))
}

func TestStore_PutOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	a := makeArtifact("a.go")
	require.NoError(t, store.PutArtifact("proj", a))

	a.Hash = 42
	a.Filemap = "changed"
	require.NoError(t, store.PutArtifact("proj", a))

	got, err := store.GetArtifact("proj", "a.go")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.Hash)
	assert.Equal(t, "changed", got.Filemap)
}

func TestStore_ListInPathOrder(t *testing.T) {
	store, _ := newTestStore(t)
	for _, p := range []string{"z.go", "a/b.go", "m.py"} {
		require.NoError(t, store.PutArtifact("proj", makeArtifact(p)))
	}

	list, err := store.ListArtifacts("proj")
	require.NoError(t, err)
	var paths []string
	for _, a := range list {
		paths = append(paths, a.Path)
	}
	assert.Equal(t, []string{"a/b.go", "m.py", "z.go"}, paths)

	empty, err := store.ListArtifacts("other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_DeleteArtifact(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.PutArtifact("proj", makeArtifact("a.go")))
	require.NoError(t, store.PutArtifact("proj", makeArtifact("b.go")))

	require.NoError(t, store.DeleteArtifact("proj", "a.go"))
	require.NoError(t, store.DeleteArtifact("proj", "a.go"), "idempotent")
	require.NoError(t, store.DeleteArtifact("nobody", "a.go"))

	list, err := store.ListArtifacts("proj")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b.go", list[0].Path)
}

func TestStore_ProjectScoped(t *testing.T) {
	// Two projects in one file use separate buckets.
	store, _ := newTestStore(t)
	require.NoError(t, store.PutArtifact("proj-A", makeArtifact("a.go")))
	require.NoError(t, store.PutArtifact("proj-B", makeArtifact("b.go")))

	got, err := store.GetArtifact("proj-B", "a.go")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.DeleteProject("proj-A"))
	require.NoError(t, store.DeleteProject("proj-A"), "idempotent")

	listA, err := store.ListArtifacts("proj-A")
	require.NoError(t, err)
	assert.Empty(t, listA)
	listB, err := store.ListArtifacts("proj-B")
	require.NoError(t, err)
	assert.Len(t, listB, 1)
}

func TestStore_StateSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.PutArtifact("proj", makeArtifact("a.go")))
	require.NoError(t, store.Close())

	store2, err := NewStore(path)
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.GetArtifact("proj", "a.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, makeArtifact("a.go"), got)
}

func TestStore_ConcurrentReads(t *testing.T) {
	store, _ := newTestStore(t)
	for i := 0; i < 20; i++ {
		require.NoError(t, store.PutArtifact("proj", makeArtifact(fmt.Sprintf("f%02d.go", i))))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := store.ListArtifacts("proj")
			if err == nil && len(list) != 20 {
				err = fmt.Errorf("got %d artifacts", len(list))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

// =============================================================================
// Lock contention: the 1s timeout prevents hangs
// =============================================================================

func TestStore_OpenTimeout_DoesNotHang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)

	require.Error(t, err, "second open should fail with lock timeout")
	assert.Nil(t, store2)
	assert.Contains(t, err.Error(), "bbolt open")
	assert.Contains(t, err.Error(), "timeout")
	assert.Less(t, elapsed, 3*time.Second, "should complete within 3s, not hang")
}
