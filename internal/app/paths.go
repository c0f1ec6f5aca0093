package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/xci/internal/adapters/treesitter"
)

// Paths holds all resolved filesystem paths for the .xci/ project directory.
type Paths struct {
	Root   string // .xci/
	DB     string // .xci/xci.db
	Config string // .xci/config.yaml

	LogDir  string // .xci/log/
	LogFile string // .xci/log/xci.log

	GrammarsDir string // .xci/grammars/
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, treesitter.StateDirName)
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "xci.db"),
		Config: filepath.Join(root, "config.yaml"),

		LogDir:  filepath.Join(root, "log"),
		LogFile: filepath.Join(root, "log", "xci.log"),

		GrammarsDir: filepath.Join(root, "grammars"),
	}
}

// EnsureDirs creates all subdirectories under .xci/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.GrammarsDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Migrate moves files left directly under .xci/ by older layouts into their
// subdirectories: the log file and grammar libraries. Returns the number of
// files moved. Existing destinations are never overwritten.
func (p *Paths) Migrate() (int, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	libExt := treesitter.LibExtension()
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		var dst string
		switch name := e.Name(); {
		case name == "xci.log":
			dst = p.LogFile
		case strings.HasSuffix(name, libExt):
			dst = filepath.Join(p.GrammarsDir, name)
		default:
			continue
		}
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return count, err
		}
		if err := os.Rename(filepath.Join(p.Root, e.Name()), dst); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
