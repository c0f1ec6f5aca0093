package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/xci/internal/adapters/treesitter"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".xci"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".xci", "xci.db"), p.DB)
	assert.Equal(t, filepath.Join("/project", ".xci", "config.yaml"), p.Config)
	assert.Equal(t, filepath.Join("/project", ".xci", "log"), p.LogDir)
	assert.Equal(t, filepath.Join("/project", ".xci", "log", "xci.log"), p.LogFile)
	assert.Equal(t, filepath.Join("/project", ".xci", "grammars"), p.GrammarsDir)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	require.NoError(t, p.EnsureDirs())
	for _, d := range []string{p.Root, p.LogDir, p.GrammarsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err, "dir %s should exist", d)
		assert.True(t, info.IsDir())
	}

	// Second call is idempotent.
	require.NoError(t, p.EnsureDirs())
}

func TestMigrate_NoStateDir(t *testing.T) {
	count, err := NewPaths(t.TempDir()).Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigrate_FreshInstall(t *testing.T) {
	p := NewPaths(t.TempDir())
	require.NoError(t, p.EnsureDirs())

	count, err := p.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigrate_FlatLayout(t *testing.T) {
	p := NewPaths(t.TempDir())
	require.NoError(t, os.MkdirAll(p.Root, 0755))

	lib := "kotlin" + treesitter.LibExtension()
	require.NoError(t, os.WriteFile(filepath.Join(p.Root, "xci.log"), []byte("log data"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(p.Root, lib), []byte("elf"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(p.Root, "config.yaml"), []byte("workers: 2\n"), 0644))

	count, err := p.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(p.LogFile)
	require.NoError(t, err)
	assert.Equal(t, "log data", string(data))

	data, err = os.ReadFile(filepath.Join(p.GrammarsDir, lib))
	require.NoError(t, err)
	assert.Equal(t, "elf", string(data))

	// Config stays where it is.
	_, err = os.Stat(p.Config)
	assert.NoError(t, err)

	// Second call finds nothing to move.
	count, err = p.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigrate_NoOverwrite(t *testing.T) {
	p := NewPaths(t.TempDir())
	require.NoError(t, p.EnsureDirs())

	require.NoError(t, os.WriteFile(filepath.Join(p.Root, "xci.log"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(p.LogFile, []byte("new"), 0644))

	count, err := p.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	data, err := os.ReadFile(p.LogFile)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// Old file is left alone when the destination exists.
	data, err = os.ReadFile(filepath.Join(p.Root, "xci.log"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}
