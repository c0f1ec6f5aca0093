package treesitter

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/xci/internal/domain/chunk"
)

// nameKinds are the identifier node kinds tried, in order, when an entity
// has no name field.
var nameKinds = []string{"identifier", "name", "field_identifier", "property_identifier", "type_identifier", "constant"}

// nodeText returns the source text of n.
func nodeText(n *tree_sitter.Node, src []byte) (string, error) {
	return sliceText(src, n.StartByte(), n.EndByte())
}

// sliceText returns src[start:end] as a string. The bytes must be valid
// UTF-8.
func sliceText(src []byte, start, end uint) (string, error) {
	if start > end || end > uint(len(src)) {
		return "", fmt.Errorf("byte range %d-%d outside %d byte source", start, end, len(src))
	}
	b := src[start:end]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: bytes %d-%d", ErrInvalidEncoding, start, end)
	}
	return string(b), nil
}

// sourceLine returns the physical line n starts on, trimmed of surrounding
// whitespace.
func sourceLine(src []byte, n *tree_sitter.Node) (string, error) {
	start := n.StartByte()
	if start > uint(len(src)) {
		return "", fmt.Errorf("byte %d outside %d byte source", start, len(src))
	}
	lineStart := uint(bytes.LastIndexByte(src[:start], '\n') + 1)
	lineEnd := uint(len(src))
	if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
		lineEnd = start + uint(i)
	}
	line, err := sliceText(src, lineStart, lineEnd)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// reindent prefixes every line of text with indent, replacing the source
// indentation of all lines after the first. Empty lines stay empty.
func reindent(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i > 0 {
			l = strings.TrimLeft(l, " \t")
		}
		if l == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

// childByKind finds the first child with the given kind.
func childByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

func startRow(n *tree_sitter.Node) int { return int(n.StartPosition().Row) }
func endRow(n *tree_sitter.Node) int   { return int(n.EndPosition().Row) }

// textRange converts a tree-sitter range to the wire form.
func textRange(r tree_sitter.Range) chunk.TextRange {
	return chunk.TextRange{
		Start: chunk.Position{Byte: int(r.StartByte), Line: int(r.StartPoint.Row), Column: int(r.StartPoint.Column)},
		End:   chunk.Position{Byte: int(r.EndByte), Line: int(r.EndPoint.Row), Column: int(r.EndPoint.Column)},
	}
}
