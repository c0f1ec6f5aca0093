package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidPattern indicates a glob pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
	// ErrRootNotDir indicates the scan root is missing or not a directory.
	ErrRootNotDir = errors.New("root is not a directory")
)

// Scanner discovers the source files of a project. A file is selected when
// a grammar handles its extension, it matches an include pattern (or none
// are configured), and it matches no exclude pattern.
type Scanner struct {
	include    []glob.Glob
	exclude    []glob.Glob
	ignoreDirs map[string]bool
	supports   func(path string) bool
}

// NewScanner compiles the patterns of cfg. supports reports whether a file
// path has a grammar.
func NewScanner(cfg *Config, supports func(path string) bool) (*Scanner, error) {
	include, err := compileGlobs(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	ignore := make(map[string]bool, len(cfg.IgnoreDirs))
	for _, d := range cfg.IgnoreDirs {
		ignore[d] = true
	}
	return &Scanner{include: include, exclude: exclude, ignoreDirs: ignore, supports: supports}, nil
}

// compileGlobs compiles slash-separated patterns.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

// Match reports whether rel, a slash-separated path relative to the
// project root, would be selected by Scan.
func (s *Scanner) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, dir := range splitDirs(rel) {
		if s.ignoreDirs[dir] {
			return false
		}
	}
	if !s.supports(rel) {
		return false
	}
	if len(s.include) > 0 && !matchAny(s.include, rel) {
		return false
	}
	return !matchAny(s.exclude, rel)
}

// Scan walks root and returns the selected files as sorted slash-separated
// relative paths. Unreadable entries are skipped.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && s.ignoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if rel = filepath.ToSlash(rel); s.Match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// splitDirs returns the directory components of a slash-separated path.
func splitDirs(rel string) []string {
	parts := strings.Split(rel, "/")
	return parts[:len(parts)-1]
}
