// Package entity decides which syntactic entities a set of requested chunks
// lands on. All spans are closed intervals [StartLine, EndLine] of zero-based
// rows; chunks use the same numbering.
//
// Everything here is pure and deterministic: no I/O, no shared state.
package entity

// Position is the declared span of one entity discovered while walking the
// syntax tree.
type Position struct {
	StartLine int
	EndLine   int
	Name      string
}

// NewPosition builds a Position.
func NewPosition(startLine, endLine int, name string) Position {
	return Position{StartLine: startLine, EndLine: endLine, Name: name}
}

// Equal compares spans only. Two entities with identical spans but different
// names are equal.
func (p Position) Equal(other Position) bool {
	return p.StartLine == other.StartLine && p.EndLine == other.EndLine
}

// Lines returns the number of rows the entity covers.
func (p Position) Lines() int {
	return p.EndLine - p.StartLine + 1
}
