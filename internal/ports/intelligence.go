package ports

import (
	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/render"
)

// Intelligence turns source text into structured artifacts. Each call
// parses src afresh; implementations hold no per-file state and are safe
// for concurrent use.
//
// lang is a language identifier such as "go" or "TypeScript", matched
// case-insensitively.
type Intelligence interface {
	// LanguageFor returns the language identifier for a file path based on
	// its extension, or false when no grammar handles it.
	LanguageFor(path string) (string, bool)

	// Filemap renders a skeleton of the whole file.
	Filemap(lang string, src []byte, opts render.Options) (string, error)

	// Definitions renders the skeleton with the entities declared on the
	// given 1-based rows expanded, and returns those definitions.
	Definitions(lang string, src []byte, path string, rows []int, opts render.Options) (string, []chunk.Definition, error)

	// CompleteChunks renders the file into buf, expanding every entity the
	// chunks cover.
	CompleteChunks(lang string, src []byte, chunks []chunk.View, buf *render.Buffer) error

	// Symbols lists the local definitions of the file in source order.
	Symbols(lang string, src []byte) ([]NamedSymbol, error)

	// HoverableRanges lists the ranges an editor could show hover info for.
	HoverableRanges(lang string, src []byte) ([]chunk.TextRange, error)
}
