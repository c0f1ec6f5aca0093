// Package ahocorasick finds many identifiers in source text in one pass
// using an Aho-Corasick automaton.
package ahocorasick

import (
	"sort"
	"unicode"
	"unicode/utf8"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// TextMatch is one occurrence of a pattern with byte offsets.
type TextMatch struct {
	PatternIndex int // index into the original patterns slice
	Start        int // byte offset start (inclusive)
	End          int // byte offset end (exclusive)
}

// Scanner matches a fixed set of patterns against text.
type Scanner struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// NewScanner builds a scanner from patterns. Empty patterns are dropped.
func NewScanner(patterns []string) *Scanner {
	p := make([]string, 0, len(patterns))
	for _, pat := range patterns {
		if pat != "" {
			p = append(p, pat)
		}
	}
	s := &Scanner{patterns: p}
	if len(p) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		s.automaton = builder.Build(p)
	}
	return s
}

// Scan finds all pattern matches in content, overlapping ones included.
func (s *Scanner) Scan(content []byte) []TextMatch {
	if len(s.patterns) == 0 {
		return nil
	}
	iter := s.automaton.IterOverlappingByte(content)
	var matches []TextMatch
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		matches = append(matches, TextMatch{
			PatternIndex: m.Pattern(),
			Start:        m.Start(),
			End:          m.End(),
		})
	}
	return matches
}

// Identifiers is Scan restricted to matches that are whole identifiers:
// neither neighbour is a letter, digit or underscore.
func (s *Scanner) Identifiers(content []byte) []TextMatch {
	all := s.Scan(content)
	out := all[:0]
	for _, m := range all {
		if isIdentAt(content, m.Start-1, true) || isIdentAt(content, m.End, false) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// isIdentAt reports whether the rune ending (before) or starting (after) at
// offset i is an identifier character.
func isIdentAt(content []byte, i int, before bool) bool {
	if i < 0 || i >= len(content) {
		return false
	}
	var r rune
	if before {
		r, _ = utf8.DecodeLastRune(content[:i+1])
	} else {
		r, _ = utf8.DecodeRune(content[i:])
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// PatternCount returns the number of patterns in the automaton.
func (s *Scanner) PatternCount() int {
	return len(s.patterns)
}

// Pattern returns the pattern string at the given index.
func (s *Scanner) Pattern(idx int) string {
	if idx < 0 || idx >= len(s.patterns) {
		return ""
	}
	return s.patterns[idx]
}
