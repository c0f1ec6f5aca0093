package render

import (
	"sort"
	"strings"

	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/entity"
)

// Mode selects which pipeline a walk belongs to.
type Mode int

const (
	ModeFilemap Mode = iota
	ModeDefinition
	ModeComplete
)

func (m Mode) String() string {
	switch m {
	case ModeFilemap:
		return "filemap"
	case ModeDefinition:
		return "definition"
	case ModeComplete:
		return "complete"
	}
	return "unknown"
}

// NameSet is an ordered set of unique names.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet creates an empty set.
func NewNameSet() *NameSet {
	return &NameSet{names: make(map[string]struct{})}
}

// Add inserts name. It reports whether the name was new.
func (s *NameSet) Add(name string) bool {
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Has reports whether name is in the set.
func (s *NameSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names.
func (s *NameSet) Len() int {
	return len(s.names)
}

// Names returns the names in sorted order.
func (s *NameSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// State is everything a tree walker reads and writes during one pipeline
// call. It is built fresh for every call and never shared.
type State struct {
	Mode Mode
	Path string
	Buf  *Buffer

	// Names accumulates the identifiers of entities already expanded in
	// definition mode.
	Names *NameSet

	// Entities is the precise intersected set for this call.
	Entities []entity.Position

	// Chunks are the requested chunks (row chunks in definition mode).
	Chunks []chunk.View

	Definitions []chunk.Definition
}

func newState(mode Mode, path string, buf *Buffer, entities []entity.Position, chunks []chunk.View) *State {
	return &State{
		Mode:     mode,
		Path:     path,
		Buf:      buf,
		Names:    NewNameSet(),
		Entities: entities,
		Chunks:   chunks,
	}
}

// IsDefinitionHit reports whether the entity named name spanning
// [start, end] should be expanded: either an entity with that name was
// already expanded, or the span is exactly one of the precise entities.
func (s *State) IsDefinitionHit(name string, start, end int) bool {
	return s.Names.Has(name) || entity.ExactSpanMatch(s.Entities, start, end)
}

// IsIntersecting applies the chunk-completion overlap heuristic.
func (s *State) IsIntersecting(start, end int) bool {
	return entity.IsIntersecting(s.Chunks, start, end)
}

// EnclosesPrecise reports whether a precise entity other than [start, end]
// lies inside it. Walkers use it to open up an entity whose nested entity
// is about to be expanded.
func (s *State) EnclosesPrecise(start, end int) bool {
	outer := entity.NewPosition(start, end, "")
	for _, e := range s.Entities {
		if !e.Equal(outer) && entity.Contains(outer, e) {
			return true
		}
	}
	return false
}

// Indent returns the indentation for a nesting depth.
func (s *State) Indent(depth int) string {
	return strings.Repeat(s.Buf.opts.Indent, depth)
}

// Record notes an expanded entity. In definition mode the name joins the
// hit set and def, when non-nil, is appended to the results.
func (s *State) Record(name string, def *chunk.Definition) {
	if s.Mode != ModeDefinition {
		return
	}
	s.Names.Add(name)
	if def != nil {
		s.Definitions = append(s.Definitions, *def)
	}
}
