package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goOnly stands in for a grammar registry that handles .go files.
func goOnly(path string) bool {
	return strings.HasSuffix(path, ".go")
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestScanner_SelectsSupportedFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":               "package main\n",
		"pkg/util/util.go":      "package util\n",
		"pkg/util/README.md":    "# util\n",
		"node_modules/x/x.go":   "package x\n",
		".git/hooks/hook.go":    "package hooks\n",
		".xci/grammars/nope.go": "package nope\n",
		"a.go":                  "package main\n",
	})

	s, err := NewScanner(DefaultConfig(), goOnly)
	require.NoError(t, err)
	files, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "main.go", "pkg/util/util.go"}, files)
}

func TestScanner_IncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":           "package main\n",
		"pkg/a.go":          "package pkg\n",
		"pkg/a_test.go":     "package pkg\n",
		"pkg/sub/b.go":      "package sub\n",
		"pkg/sub/b_test.go": "package sub\n",
	})

	cfg := DefaultConfig()
	cfg.Include = []string{"pkg/**"}
	cfg.Exclude = []string{"**_test.go"}
	s, err := NewScanner(cfg, goOnly)
	require.NoError(t, err)

	files, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/a.go", "pkg/sub/b.go"}, files)
}

func TestScanner_Match(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []string{"gen/*.go"}
	s, err := NewScanner(cfg, goOnly)
	require.NoError(t, err)

	assert.True(t, s.Match("main.go"))
	assert.True(t, s.Match("gen/sub/x.go"))
	assert.False(t, s.Match("gen/x.go"))
	assert.False(t, s.Match("vendor/lib/lib.go"))
	assert.False(t, s.Match("docs/index.md"))
}

func TestScanner_InvalidPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = []string{"[invalid"}
	_, err := NewScanner(cfg, goOnly)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestScanner_RootMustBeDirectory(t *testing.T) {
	s, err := NewScanner(DefaultConfig(), goOnly)
	require.NoError(t, err)

	_, err = s.Scan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrRootNotDir)

	file := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0644))
	_, err = s.Scan(file)
	assert.ErrorIs(t, err, ErrRootNotDir)
}
