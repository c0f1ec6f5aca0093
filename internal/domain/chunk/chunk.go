// Package chunk defines the value types exchanged with callers: requested or
// rendered code excerpts, extracted definitions, and scope-graph symbols.
//
// CodeChunk is the owned, serializable form. View is the borrowed form used
// while a render pipeline runs; its strings share the caller's backing data
// and it must not be retained after the pipeline call returns.
package chunk

import (
	"fmt"
	"strings"
)

// CodeChunk is an excerpt of a source file identified by path and an
// inclusive line range. Line numbering (zero- or one-based) follows the
// caller's convention and must be consistent within one request.
type CodeChunk struct {
	Path      string `json:"path"`
	Alias     int    `json:"alias"`
	Snippet   string `json:"snippet"`
	StartLine int    `json:"start"`
	EndLine   int    `json:"end"`
}

// IsEmpty reports whether the snippet is empty or whitespace-only.
func (c CodeChunk) IsEmpty() bool {
	return strings.TrimSpace(c.Snippet) == ""
}

// View returns the borrowed form of the chunk.
func (c *CodeChunk) View() View {
	return View{
		Path:      c.Path,
		Text:      c.Snippet,
		Alias:     c.Alias,
		StartLine: c.StartLine,
		EndLine:   c.EndLine,
	}
}

// Validate checks the line-range invariant.
func (c CodeChunk) Validate() error {
	if c.StartLine < 0 || c.EndLine < 0 {
		return fmt.Errorf("chunk %s: negative line range [%d, %d]", c.Path, c.StartLine, c.EndLine)
	}
	if c.StartLine > c.EndLine {
		return fmt.Errorf("chunk %s: start %d after end %d", c.Path, c.StartLine, c.EndLine)
	}
	return nil
}

func (c CodeChunk) String() string {
	return fmt.Sprintf("%d: %s\n%s", c.Alias, c.Path, c.Snippet)
}

// View is a non-owning view of a chunk.
type View struct {
	Path      string
	Text      string
	Alias     int
	StartLine int
	EndLine   int
}

// IsEmpty reports whether the text is empty or whitespace-only.
func (v View) IsEmpty() bool {
	return strings.TrimSpace(v.Text) == ""
}

func (v View) String() string {
	return v.Path + "\n" + v.Text
}

// Views converts owned chunks into views over the same data.
func Views(chunks []CodeChunk) []View {
	views := make([]View, len(chunks))
	for i := range chunks {
		views[i] = chunks[i].View()
	}
	return views
}
