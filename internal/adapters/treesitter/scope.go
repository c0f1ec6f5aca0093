package treesitter

import (
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/xci/internal/domain/chunk"
)

// Capture names understood in scope queries.
const (
	captureScope      = "local.scope"
	captureDefinition = "local.definition"
	captureReference  = "local.reference"
)

// ScopeGraph is the set of lexical scopes of a file with the definitions
// declared in them and the references resolved against them.
type ScopeGraph struct {
	scopes []scope
	defs   []definition
	refs   []Reference
}

type scope struct {
	rng    chunk.TextRange
	parent int // -1 for the root
}

type definition struct {
	name  string
	kind  string
	rng   chunk.TextRange
	scope int
}

// Reference is an identifier use. Definition indexes Symbols(), or is -1
// when the name does not resolve inside the file.
type Reference struct {
	Name       string          `json:"name"`
	Range      chunk.TextRange `json:"range"`
	Definition int             `json:"definition"`
}

// Resolved reports whether the reference points at a local definition.
func (r Reference) Resolved() bool {
	return r.Definition >= 0
}

type capturedDef struct {
	definition
	// owner is the range of the declaration node holding the name.
	owner chunk.TextRange
}

func buildScopeGraph(q *tree_sitter.Query, root *tree_sitter.Node, src []byte) (*ScopeGraph, error) {
	names := q.CaptureNames()
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	rootRange := textRange(root.Range())
	scopes := []chunk.TextRange{rootRange}
	var defs []capturedDef
	var refs []Reference

	matches := cursor.Matches(q, root, src)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for _, c := range m.Captures {
			capture := names[c.Index]
			rng := textRange(c.Node.Range())
			switch {
			case capture == captureScope:
				scopes = append(scopes, rng)
			case capture == captureDefinition || strings.HasPrefix(capture, captureDefinition+"."):
				text, err := nodeText(&c.Node, src)
				if err != nil {
					return nil, err
				}
				d := capturedDef{definition: definition{
					name: text,
					kind: strings.TrimPrefix(strings.TrimPrefix(capture, captureDefinition), "."),
					rng:  rng,
				}}
				if p := c.Node.Parent(); p != nil {
					d.owner = textRange(p.Range())
				}
				defs = append(defs, d)
			case capture == captureReference:
				text, err := nodeText(&c.Node, src)
				if err != nil {
					return nil, err
				}
				refs = append(refs, Reference{Name: text, Range: rng, Definition: -1})
			}
		}
	}

	g := &ScopeGraph{}
	g.addScopes(scopes)
	g.addDefinitions(defs)
	g.addReferences(refs)
	return g, nil
}

// addScopes dedups and nests the captured scopes. Scope 0 is the root.
func (g *ScopeGraph) addScopes(ranges []chunk.TextRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start.Byte != ranges[j].Start.Byte {
			return ranges[i].Start.Byte < ranges[j].Start.Byte
		}
		return ranges[i].End.Byte > ranges[j].End.Byte
	})
	for _, r := range ranges {
		if n := len(g.scopes); n > 0 && sameRange(g.scopes[n-1].rng, r) {
			continue
		}
		g.scopes = append(g.scopes, scope{rng: r, parent: g.innermost(r)})
	}
}

// innermost returns the smallest scope containing r, or -1.
func (g *ScopeGraph) innermost(r chunk.TextRange) int {
	best := -1
	for i, s := range g.scopes {
		if s.rng.Contains(r) && (best < 0 || s.rng.Size() <= g.scopes[best].rng.Size()) {
			best = i
		}
	}
	return best
}

// scopeOf returns the index of the scope exactly matching r, or -1.
func (g *ScopeGraph) scopeOf(r chunk.TextRange) int {
	for i, s := range g.scopes {
		if sameRange(s.rng, r) {
			return i
		}
	}
	return -1
}

// addDefinitions places each definition in its innermost scope. A name
// declared by a node that is itself a scope (a function's name) belongs to
// the enclosing scope instead.
func (g *ScopeGraph) addDefinitions(defs []capturedDef) {
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].rng.Start.Byte < defs[j].rng.Start.Byte })
	seen := make(map[int]bool, len(defs))
	for _, d := range defs {
		if seen[d.rng.Start.Byte] {
			continue
		}
		seen[d.rng.Start.Byte] = true

		d.scope = g.innermost(d.rng)
		if own := g.scopeOf(d.owner); own >= 0 && own == d.scope && g.scopes[own].parent >= 0 {
			d.scope = g.scopes[own].parent
		}
		g.defs = append(g.defs, d.definition)
	}
}

// addReferences resolves each reference by walking outward from its
// innermost scope. Identifiers that are definitions are not references.
func (g *ScopeGraph) addReferences(refs []Reference) {
	defAt := make(map[int]bool, len(g.defs))
	for _, d := range g.defs {
		defAt[d.rng.Start.Byte] = true
	}
	byScope := make(map[int][]int)
	for i, d := range g.defs {
		byScope[d.scope] = append(byScope[d.scope], i)
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Range.Start.Byte < refs[j].Range.Start.Byte })
	seen := make(map[int]bool, len(refs))
	for _, r := range refs {
		start := r.Range.Start.Byte
		if defAt[start] || seen[start] {
			continue
		}
		seen[start] = true
		for s := g.innermost(r.Range); s >= 0 && r.Definition < 0; s = g.scopes[s].parent {
			for _, di := range byScope[s] {
				if g.defs[di].name == r.Name {
					r.Definition = di
					break
				}
			}
		}
		g.refs = append(g.refs, r)
	}
}

// Symbols returns every definition in source order.
func (g *ScopeGraph) Symbols() []chunk.Symbol {
	out := make([]chunk.Symbol, len(g.defs))
	for i, d := range g.defs {
		out[i] = chunk.Symbol{Kind: d.kind, Range: d.rng}
	}
	return out
}

// SymbolName returns the identifier of definition i.
func (g *ScopeGraph) SymbolName(i int) string {
	if i < 0 || i >= len(g.defs) {
		return ""
	}
	return g.defs[i].name
}

// References returns every identifier use in source order.
func (g *ScopeGraph) References() []Reference {
	return g.refs
}

// ScopeCount returns the number of distinct scopes, the root included.
func (g *ScopeGraph) ScopeCount() int {
	return len(g.scopes)
}

// DefinitionAt returns the definition at byte offset: the one declared
// there, or the one the reference there resolves to.
func (g *ScopeGraph) DefinitionAt(offset int) (int, bool) {
	for i, d := range g.defs {
		if d.rng.ContainsByte(offset) {
			return i, true
		}
	}
	for _, r := range g.refs {
		if r.Range.ContainsByte(offset) && r.Resolved() {
			return r.Definition, true
		}
	}
	return -1, false
}

// ReferencesTo returns the references resolving to definition def.
func (g *ScopeGraph) ReferencesTo(def int) []Reference {
	var out []Reference
	for _, r := range g.refs {
		if r.Definition == def {
			out = append(out, r)
		}
	}
	return out
}

func sameRange(a, b chunk.TextRange) bool {
	return a.Start.Byte == b.Start.Byte && a.End.Byte == b.End.Byte
}
