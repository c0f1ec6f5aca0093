// Package render holds the output discipline shared by every per-language
// tree walker: a rewindable text buffer, the per-call walk State, and the
// three pipelines (filemap, definition extraction, chunk completion) that
// seed the State from the intersection algorithm before walking.
package render

import (
	"fmt"
	"strings"
)

// Options controls how rendered text is formatted. It is passed explicitly
// into every pipeline call.
type Options struct {
	// LineNumbers prefixes each emitted source line with its 1-based number.
	LineNumbers bool
	// Indent is repeated once per nesting level.
	Indent string
}

// DefaultOptions returns line-numbered output indented with tabs.
func DefaultOptions() Options {
	return Options{LineNumbers: true, Indent: "\t"}
}

// noLine is the cursor value before anything has been emitted.
const noLine = -1

// Mark is a checkpoint of a Buffer's length and line cursor.
type Mark struct {
	n    int
	last int
}

// Buffer is an append-only text builder that can be truncated back to a
// Mark. It remembers the last source line it numbered so fragments emitted
// on the same line share one line number.
type Buffer struct {
	b    []byte
	last int
	opts Options
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts Options) *Buffer {
	return &Buffer{last: noLine, opts: opts}
}

// Options returns the formatting options the buffer was created with.
func (b *Buffer) Options() Options {
	return b.opts
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Mark records the current position.
func (b *Buffer) Mark() Mark {
	return Mark{n: len(b.b), last: b.last}
}

// Truncate discards everything written after m.
func (b *Buffer) Truncate(m Mark) {
	if m.n < len(b.b) {
		b.b = b.b[:m.n]
	}
	b.last = m.last
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
	b.last = noLine
}

// Write appends raw bytes without numbering.
func (b *Buffer) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}

// WriteString appends raw text without numbering.
func (b *Buffer) WriteString(s string) (int, error) {
	b.b = append(b.b, s...)
	return len(s), nil
}

// Section writes header and starts numbering afresh, so the first line of
// the next file is always numbered.
func (b *Buffer) Section(header string) {
	b.b = append(b.b, header...)
	b.last = noLine
}

func (b *Buffer) String() string {
	return string(b.b)
}

// Append emits text that starts on zero-based source line. With line numbers
// on, the text is prefixed with line+1 unless that line was already numbered.
func (b *Buffer) Append(text string, line int) {
	if !b.opts.LineNumbers {
		b.b = append(b.b, text...)
		return
	}
	if line == b.last {
		b.b = append(b.b, text...)
		return
	}
	b.b = fmt.Appendf(b.b, "%-3d %s", line+1, text)
	b.last = line
}

// AppendSource emits text that may span several physical lines, the first
// of which is startLine. Each line goes through Append so it gets its own
// number.
func (b *Buffer) AppendSource(text string, startLine int) {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i < len(lines)-1 {
			b.Append(l+"\n", startLine+i)
			continue
		}
		if l != "" {
			b.Append(l, startLine+i)
		}
	}
}

// Body rewinds to mark and emits the full text of an entity in place of
// whatever was rendered for it since. startLine is the zero-based line of
// the first line of text.
func (b *Buffer) Body(text string, startLine int, indent string, mark Mark) {
	b.Truncate(mark)
	if !b.opts.LineNumbers {
		b.b = fmt.Appendf(b.b, "%s %s\n", indent, text)
		return
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i > 0 {
			b.b = append(b.b, '\n')
		}
		b.b = fmt.Appendf(b.b, "%d %s%s", startLine+1+i, indent, strings.TrimSuffix(l, "\r"))
	}
	b.b = append(b.b, '\n')
	b.last = startLine + len(lines) - 1
}
