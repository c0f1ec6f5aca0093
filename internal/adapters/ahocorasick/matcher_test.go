package ahocorasick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// found returns the matched text of each match in order.
func found(t *testing.T, s *Scanner, content string, matches []TextMatch) []string {
	var out []string
	for _, m := range matches {
		assert.Equal(t, s.Pattern(m.PatternIndex), content[m.Start:m.End])
		out = append(out, content[m.Start:m.End])
	}
	return out
}

func TestScanner_SinglePattern(t *testing.T) {
	s := NewScanner([]string{"add"})
	content := "x := add(1, 2)"
	matches := s.Scan([]byte(content))
	require.Len(t, matches, 1)
	assert.Equal(t, 5, matches[0].Start)
	assert.Equal(t, 8, matches[0].End)
}

func TestScanner_MultiplePatterns(t *testing.T) {
	s := NewScanner([]string{"login", "auth", "session"})
	content := "auth login creates session"
	assert.ElementsMatch(t, []string{"auth", "login", "session"}, found(t, s, content, s.Scan([]byte(content))))
}

func TestScanner_OverlappingPatterns(t *testing.T) {
	s := NewScanner([]string{"log", "login"})
	content := "login page"
	assert.ElementsMatch(t, []string{"log", "login"}, found(t, s, content, s.Scan([]byte(content))))
}

func TestScanner_NoMatch(t *testing.T) {
	s := NewScanner([]string{"auth"})
	assert.Empty(t, s.Scan([]byte("hello world")))
}

func TestScanner_CaseSensitive(t *testing.T) {
	s := NewScanner([]string{"Point"})
	assert.Empty(t, s.Scan([]byte("point")))
	assert.Len(t, s.Scan([]byte("Point")), 1)
}

func TestScanner_Empty(t *testing.T) {
	s := NewScanner([]string{"", ""})
	assert.Equal(t, 0, s.PatternCount())
	assert.Empty(t, s.Scan([]byte("anything")))
	assert.Empty(t, s.Identifiers([]byte("anything")))
}

func TestScanner_IdentifiersRespectBoundaries(t *testing.T) {
	s := NewScanner([]string{"add", "sum"})
	content := "sum := add(a, b) + addOne(sum_x) + _add + add2 + (add)"
	got := found(t, s, content, s.Identifiers([]byte(content)))
	assert.Equal(t, []string{"sum", "add", "add"}, got)
}

func TestScanner_IdentifiersUnicodeNeighbours(t *testing.T) {
	s := NewScanner([]string{"x"})
	content := "éx x"
	matches := s.Identifiers([]byte(content))
	require.Len(t, matches, 1)
	assert.Equal(t, len("éx "), matches[0].Start)
}

func TestScanner_Pattern(t *testing.T) {
	s := NewScanner([]string{"a", "b"})
	assert.Equal(t, 2, s.PatternCount())
	assert.Equal(t, "b", s.Pattern(1))
	assert.Equal(t, "", s.Pattern(2))
	assert.Equal(t, "", s.Pattern(-1))
}
