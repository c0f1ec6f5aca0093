//go:build !lean

package treesitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scopeSource = `package main

func add(a, b int) int {
	sum := a + b
	return sum
}

func main() {
	x := add(1, 2)
	_ = x
}
`

func symbolNames(g *ScopeGraph) []string {
	var names []string
	for i := range g.Symbols() {
		names = append(names, g.SymbolName(i))
	}
	return names
}

func TestScopeGraph_GoDefinitions(t *testing.T) {
	g, err := build(t, "go", scopeSource).ScopeGraph()
	require.NoError(t, err)

	assert.Equal(t, []string{"add", "a", "b", "sum", "main", "x"}, symbolNames(g))
	syms := g.Symbols()
	assert.Equal(t, "function", syms[0].Kind)
	assert.Equal(t, "variable", syms[3].Kind)
	assert.Equal(t, 2, syms[0].Range.Start.Line)
	assert.Equal(t, "", g.SymbolName(99))
}

func TestScopeGraph_GoResolution(t *testing.T) {
	g, err := build(t, "go", scopeSource).ScopeGraph()
	require.NoError(t, err)

	// The call in main resolves to the top-level function.
	call := strings.Index(scopeSource, "add(1, 2)")
	def, ok := g.DefinitionAt(call)
	require.True(t, ok)
	assert.Equal(t, "add", g.SymbolName(def))
	assert.Len(t, g.ReferencesTo(def), 1)

	// A use of a local resolves to the local.
	use := strings.Index(scopeSource, "return sum") + len("return ")
	def, ok = g.DefinitionAt(use)
	require.True(t, ok)
	assert.Equal(t, "sum", g.SymbolName(def))

	// Parameters are referenced once each.
	a, ok := g.DefinitionAt(strings.Index(scopeSource, "a, b int"))
	require.True(t, ok)
	assert.Len(t, g.ReferencesTo(a), 1)
}

func TestScopeGraph_LocalsDoNotLeak(t *testing.T) {
	src := `package main

func one() {
	v := 1
	_ = v
}

func two() {
	_ = v
}
`
	g, err := build(t, "go", src).ScopeGraph()
	require.NoError(t, err)

	leak := strings.LastIndex(src, "_ = v") + len("_ = ")
	_, ok := g.DefinitionAt(leak)
	assert.False(t, ok)

	var unresolved int
	for _, r := range g.References() {
		if r.Name == "v" && !r.Resolved() {
			unresolved++
		}
	}
	assert.Equal(t, 1, unresolved)
}

func TestScopeGraph_PythonMethodsLiveInClass(t *testing.T) {
	g, err := build(t, "python", pythonSource).ScopeGraph()
	require.NoError(t, err)

	names := symbolNames(g)
	assert.Contains(t, names, "Greeter")
	assert.Contains(t, names, "hello")
	assert.Contains(t, names, "main")

	// Greeter("x") inside main resolves to the module-level class.
	use := strings.Index(pythonSource, `Greeter("x")`)
	def, ok := g.DefinitionAt(use)
	require.True(t, ok)
	assert.Equal(t, "Greeter", g.SymbolName(def))
	assert.Equal(t, "class", g.Symbols()[def].Kind)
}

func TestScopeGraph_ScopesAreDeduplicated(t *testing.T) {
	g, err := build(t, "go", "package main\n").ScopeGraph()
	require.NoError(t, err)
	// source_file is captured and is also the root.
	assert.Equal(t, 1, g.ScopeCount())
	assert.Empty(t, g.Symbols())
}
