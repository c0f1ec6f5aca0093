package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/xci/internal/adapters/ahocorasick"
	"github.com/corey/xci/internal/ports"
)

// Occurrence is one whole-identifier use of a searched name in an indexed
// file. Line and Column are 1-based.
type Occurrence struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Name    string `json:"name"`
	Text    string `json:"text"`    // the source line, trimmed
	Defines bool   `json:"defines"` // the occurrence is a stored symbol's definition
}

// FindOccurrences scans the files of arts under root for the given names
// and returns every occurrence in path then offset order. Files that no
// longer exist are skipped.
func FindOccurrences(root string, arts []*ports.FileArtifact, names []string) ([]Occurrence, error) {
	scanner := ahocorasick.NewScanner(names)
	if scanner.PatternCount() == 0 {
		return nil, nil
	}

	var out []Occurrence
	for _, a := range arts {
		src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(a.Path)))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		defs := make(map[int]string, len(a.Symbols))
		for _, s := range a.Symbols {
			defs[s.Range.Start.Byte] = s.Name
		}

		for _, m := range scanner.Identifiers(src) {
			name := scanner.Pattern(m.PatternIndex)
			lineStart := bytes.LastIndexByte(src[:m.Start], '\n') + 1
			lineEnd := bytes.IndexByte(src[m.Start:], '\n')
			if lineEnd < 0 {
				lineEnd = len(src)
			} else {
				lineEnd += m.Start
			}
			out = append(out, Occurrence{
				Path:    a.Path,
				Line:    bytes.Count(src[:m.Start], []byte{'\n'}) + 1,
				Column:  m.Start - lineStart + 1,
				Name:    name,
				Text:    strings.TrimSpace(string(src[lineStart:lineEnd])),
				Defines: defs[m.Start] == name,
			})
		}
	}
	return out, nil
}

// Refs finds the names across every indexed file.
func (a *App) Refs(names []string) ([]Occurrence, error) {
	arts, err := a.Artifacts()
	if err != nil {
		return nil, err
	}
	return FindOccurrences(a.ProjectRoot, arts, names)
}
