package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/xci/internal/domain/chunk"
)

func view(start, end int) chunk.View {
	return chunk.View{Path: "f", StartLine: start, EndLine: end}
}

func TestOverlaps_BoundaryInclusive(t *testing.T) {
	assert.True(t, Overlaps(5, 5, 1, 5), "touching end overlaps")
	assert.True(t, Overlaps(1, 1, 1, 5), "touching start overlaps")
	assert.False(t, Overlaps(6, 6, 1, 5))
	assert.False(t, Overlaps(0, 0, 1, 5))
	assert.True(t, Overlaps(0, 10, 3, 4), "enclosing overlaps")
}

func TestIntersectsAny(t *testing.T) {
	e := NewPosition(1, 5, "f")
	assert.True(t, IntersectsAny(e, []chunk.View{view(5, 5)}))
	assert.False(t, IntersectsAny(e, []chunk.View{view(6, 6)}))
	assert.True(t, IntersectsAny(e, []chunk.View{view(8, 9), view(0, 1)}))
	assert.False(t, IntersectsAny(e, nil))
}

func TestContains(t *testing.T) {
	outer := NewPosition(0, 20, "Outer")
	assert.True(t, Contains(outer, NewPosition(3, 7, "inner")))
	assert.True(t, Contains(outer, outer), "a span contains itself")
	assert.False(t, Contains(outer, NewPosition(15, 25, "straddle")))
}

func TestPosition_EqualIgnoresName(t *testing.T) {
	a := NewPosition(2, 9, "Alpha")
	b := NewPosition(2, 9, "Beta")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewPosition(2, 10, "Alpha")))
	assert.Equal(t, 8, a.Lines())
}

func TestPreciseIntersected_InnermostWins(t *testing.T) {
	class := NewPosition(0, 30, "Handler")
	method := NewPosition(4, 10, "login")
	other := NewPosition(12, 20, "logout")
	all := []Position{class, method, other}

	got := PreciseIntersected(all, []chunk.View{view(6, 6)})
	require.Len(t, got, 1)
	assert.Equal(t, "login", got[0].Name)

	// A chunk in the class but outside every method selects the class.
	got = PreciseIntersected(all, []chunk.View{view(25, 26)})
	require.Len(t, got, 1)
	assert.Equal(t, "Handler", got[0].Name)

	// Chunks hitting both methods return both, class disqualified.
	got = PreciseIntersected(all, []chunk.View{view(5, 5), view(15, 15)})
	require.Len(t, got, 2)
	assert.Equal(t, "login", got[0].Name)
	assert.Equal(t, "logout", got[1].Name)
}

func TestPreciseIntersected_NoChunks(t *testing.T) {
	all := []Position{NewPosition(0, 3, "a")}
	assert.Empty(t, PreciseIntersected(all, nil))
}

// Two entities sharing a span compare equal, so neither disqualifies the
// other and both are returned.
func TestPreciseIntersected_IdenticalSpansDifferentNames(t *testing.T) {
	all := []Position{NewPosition(2, 8, "first"), NewPosition(2, 8, "second")}
	got := PreciseIntersected(all, []chunk.View{view(4, 4)})
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
}

// Property: E is returned iff it intersects and no other entity E' != E both
// intersects and is contained in E.
func TestPreciseIntersected_Property(t *testing.T) {
	all := []Position{
		NewPosition(0, 50, "mod"),
		NewPosition(2, 20, "A"),
		NewPosition(4, 8, "A.x"),
		NewPosition(10, 18, "A.y"),
		NewPosition(22, 40, "B"),
		NewPosition(25, 30, "B.z"),
		NewPosition(45, 49, "C"),
	}
	chunkSets := [][]chunk.View{
		{view(5, 5)},
		{view(21, 21)},
		{view(9, 9), view(26, 26)},
		{view(0, 50)},
		{view(41, 44)},
		{view(60, 70)},
	}
	for _, chunks := range chunkSets {
		got := PreciseIntersected(all, chunks)
		for _, e := range all {
			want := IntersectsAny(e, chunks)
			for _, o := range all {
				if !o.Equal(e) && IntersectsAny(o, chunks) && Contains(e, o) {
					want = false
				}
			}
			assert.Equal(t, want, ExactSpanMatch(got, e.StartLine, e.EndLine), "entity %s chunks %v", e.Name, chunks)
		}
	}
}

func TestRowsToChunks(t *testing.T) {
	chunks := RowsToChunks("src/a.go", []int{5, 1, 12})
	require.Len(t, chunks, 3)
	assert.Equal(t, 4, chunks[0].StartLine)
	assert.Equal(t, 4, chunks[0].EndLine)
	assert.Equal(t, 0, chunks[1].StartLine)
	assert.Equal(t, 11, chunks[2].EndLine)
	assert.Equal(t, "src/a.go", chunks[0].Path)
	assert.Equal(t, 0, chunks[0].Alias)
}

func TestRowsToChunks_DropsNonPositiveRows(t *testing.T) {
	chunks := RowsToChunks("a", []int{0, -3, 2})
	require.Len(t, chunks, 1)
	assert.Equal(t, 1, chunks[0].StartLine)
}

func TestExactSpanMatch(t *testing.T) {
	entities := []Position{NewPosition(2, 9, "f"), NewPosition(11, 14, "g")}
	assert.True(t, ExactSpanMatch(entities, 2, 9))
	assert.False(t, ExactSpanMatch(entities, 2, 8))
	assert.False(t, ExactSpanMatch(entities, 4, 4))
	assert.False(t, ExactSpanMatch(nil, 2, 9))
}

func TestIsIntersecting_WideEnclosingSpanShortCircuits(t *testing.T) {
	chunks := []chunk.View{view(10, 10), view(500, 500)}

	assert.False(t, IsIntersecting(chunks, 1, 500), "wide enclosing span is not intersecting")
	assert.True(t, IsIntersecting(chunks, 10, 10))
	assert.True(t, IsIntersecting(chunks, 400, 600), "wide span not enclosing the first chunk falls back to overlap")
}

func TestIsIntersecting_Threshold(t *testing.T) {
	chunks := []chunk.View{view(50, 50), view(60, 60)}

	// Width exactly 100 still falls back to overlap testing.
	assert.True(t, IsIntersecting(chunks, 0, 100))
	// Width 101 enclosing both chunks is short-circuited.
	assert.False(t, IsIntersecting(chunks, 0, 101))
}

func TestIsIntersecting_NoChunks(t *testing.T) {
	assert.False(t, IsIntersecting(nil, 0, 1000))
}
