package chunk

// Position is a point in a source file. Line and Column are zero-based;
// Byte is the offset from the start of the file.
type Position struct {
	Byte   int `json:"byte"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// TextRange spans [Start, End) in bytes. Start.Line and End.Line are the
// first and last lines touched.
type TextRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether other lies entirely within r.
func (r TextRange) Contains(other TextRange) bool {
	return r.Start.Byte <= other.Start.Byte && other.End.Byte <= r.End.Byte
}

// ContainsByte reports whether offset falls inside r.
func (r TextRange) ContainsByte(offset int) bool {
	return r.Start.Byte <= offset && offset < r.End.Byte
}

// Size returns the length of the range in bytes.
func (r TextRange) Size() int {
	return r.End.Byte - r.Start.Byte
}

// Symbol is a definition discovered by the scope graph.
type Symbol struct {
	Kind  string    `json:"kind"`
	Range TextRange `json:"range"`
}
