package entity

import "github.com/corey/xci/internal/domain/chunk"

// wideSpanLines is the width above which a span that encloses every requested
// chunk stops counting as intersecting in IsIntersecting.
const wideSpanLines = 100

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] share a row.
// Touching endpoints overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// Contains reports whether inner lies within outer.
func Contains(outer, inner Position) bool {
	return outer.StartLine <= inner.StartLine && outer.EndLine >= inner.EndLine
}

// IntersectsAny reports whether e overlaps at least one chunk.
func IntersectsAny(e Position, chunks []chunk.View) bool {
	for _, c := range chunks {
		if Overlaps(c.StartLine, c.EndLine, e.StartLine, e.EndLine) {
			return true
		}
	}
	return false
}

// NoMoreSpecificMatch is false when another entity nested in e also
// intersects the chunks, so the innermost matching entity wins.
func NoMoreSpecificMatch(e Position, all []Position, chunks []chunk.View) bool {
	for _, other := range all {
		if !other.Equal(e) && IntersectsAny(other, chunks) && Contains(e, other) {
			return false
		}
	}
	return true
}

// PreciseIntersected returns, in input order, the entities that intersect the
// chunks and have no nested entity that also does.
func PreciseIntersected(all []Position, chunks []chunk.View) []Position {
	var matched []Position
	for _, e := range all {
		if IntersectsAny(e, chunks) && NoMoreSpecificMatch(e, all, chunks) {
			matched = append(matched, e)
		}
	}
	return matched
}

// RowsToChunks turns 1-based row numbers into single-row chunks on zero-based
// lines, so row lookups go through the same machinery as range requests.
// Rows below 1 address nothing and are dropped.
func RowsToChunks(path string, rows []int) []chunk.View {
	chunks := make([]chunk.View, 0, len(rows))
	for _, row := range rows {
		if row < 1 {
			continue
		}
		chunks = append(chunks, chunk.View{
			Path:      path,
			Text:      path,
			StartLine: row - 1,
			EndLine:   row - 1,
		})
	}
	return chunks
}

// ExactSpanMatch reports whether some entity spans exactly [start, end].
func ExactSpanMatch(entities []Position, start, end int) bool {
	for _, e := range entities {
		if e.StartLine == start && e.EndLine == end {
			return true
		}
	}
	return false
}

// IsIntersecting reports whether [start, end] overlaps a chunk. A span wider
// than wideSpanLines that encloses the whole chunk set, from the first
// chunk's start to the last chunk's end, is never intersecting; large
// enclosing blocks are not expanded in full.
func IsIntersecting(chunks []chunk.View, start, end int) bool {
	if len(chunks) > 0 {
		first, last := chunks[0], chunks[len(chunks)-1]
		if start <= first.StartLine && end >= last.EndLine && end-start > wideSpanLines {
			return false
		}
	}
	for _, c := range chunks {
		if Overlaps(start, end, c.StartLine, c.EndLine) {
			return true
		}
	}
	return false
}
