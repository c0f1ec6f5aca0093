package render

import (
	"fmt"

	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/entity"
)

// Tree is a parsed file as seen by the pipelines. Each supported grammar
// provides one.
type Tree interface {
	// EntityPositions lists the span of every entity in the file, in the
	// order the walker meets them.
	EntityPositions() ([]entity.Position, error)

	// Walk renders the file depth-first into st.Buf.
	Walk(st *State) error
}

// Filemap renders a skeleton of the whole file. No entity is expanded.
func Filemap(t Tree, opts Options) (string, error) {
	buf := NewBuffer(opts)
	st := newState(ModeFilemap, "", buf, nil, nil)
	if err := t.Walk(st); err != nil {
		return "", fmt.Errorf("filemap: %w", err)
	}
	return buf.String(), nil
}

// Definitions renders the skeleton with the entities declared on the
// 1-based rows expanded, and returns the definitions found there.
func Definitions(t Tree, path string, rows []int, opts Options) (string, []chunk.Definition, error) {
	chunks := entity.RowsToChunks(path, rows)
	all, err := t.EntityPositions()
	if err != nil {
		return "", nil, fmt.Errorf("definitions: %w", err)
	}

	buf := NewBuffer(opts)
	st := newState(ModeDefinition, path, buf, entity.PreciseIntersected(all, chunks), chunks)
	if err := t.Walk(st); err != nil {
		return "", nil, fmt.Errorf("definitions: %w", err)
	}
	return buf.String(), st.Definitions, nil
}

// CompleteChunks renders the file into buf with every entity precisely
// covered by chunks expanded to its full body.
func CompleteChunks(t Tree, chunks []chunk.View, buf *Buffer) error {
	all, err := t.EntityPositions()
	if err != nil {
		return fmt.Errorf("complete chunks: %w", err)
	}

	path := ""
	if len(chunks) > 0 {
		path = chunks[0].Path
	}
	st := newState(ModeComplete, path, buf, entity.PreciseIntersected(all, chunks), chunks)
	if err := t.Walk(st); err != nil {
		return fmt.Errorf("complete chunks: %w", err)
	}
	return nil
}
