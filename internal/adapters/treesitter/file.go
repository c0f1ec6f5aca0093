package treesitter

import (
	"fmt"
	"sync"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/render"
)

const (
	// MaxFileSize is the largest source TryBuild accepts, in bytes.
	MaxFileSize = 500_000
	// ParseTimeout bounds a single parse.
	ParseTimeout = time.Second
)

// File is a parsed source file ready for exactly one query. Every method
// releases the syntax tree; a second call returns ErrConsumed.
type File struct {
	src     []byte
	lang    Language
	grammar *tree_sitter.Language
	queries *queryCache

	mu   sync.Mutex
	tree *tree_sitter.Tree
}

// TryBuild parses src as langID using the default registry.
func TryBuild(src []byte, langID string) (*File, error) {
	return DefaultRegistry().TryBuild(src, langID)
}

// TryBuild parses src as the language named langID (case-insensitive).
func (r *Registry) TryBuild(src []byte, langID string) (*File, error) {
	if len(src) > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(src), MaxFileSize)
	}
	lang, ok := r.Lookup(langID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, langID)
	}
	grammar, err := r.grammar(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLanguageMismatch, err)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLanguageMismatch, lang.Name(), err)
	}
	parser.SetTimeoutMicros(uint64(ParseTimeout / time.Microsecond))

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s after %s", ErrParseTimeout, lang.Name(), ParseTimeout)
	}
	return &File{
		src:     src,
		lang:    lang,
		grammar: grammar,
		queries: r.queries,
		tree:    tree,
	}, nil
}

// Language returns the language the file was parsed as.
func (f *File) Language() Language {
	return f.lang
}

// take hands the tree to a single consumer.
func (f *File) take() (*tree_sitter.Tree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tree == nil {
		return nil, ErrConsumed
	}
	t := f.tree
	f.tree = nil
	return t, nil
}

// Close releases the tree without querying it. It is safe to call after a
// query.
func (f *File) Close() {
	if t, err := f.take(); err == nil {
		t.Close()
	}
}

// HoverableRanges returns the ranges of every node matched by the
// language's hoverable query, in match order.
func (f *File) HoverableRanges() ([]chunk.TextRange, error) {
	tree, err := f.take()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	q, err := f.queries.get(f.lang, f.grammar, queryHoverable)
	if err != nil {
		return nil, err
	}
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	var out []chunk.TextRange
	matches := cursor.Matches(q, tree.RootNode(), f.src)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for _, c := range m.Captures {
			out = append(out, textRange(c.Node.Range()))
		}
	}
	return out, nil
}

// ScopeGraph resolves the file's local definitions and references.
func (f *File) ScopeGraph() (*ScopeGraph, error) {
	tree, err := f.take()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	q, err := f.queries.get(f.lang, f.grammar, queryScope)
	if err != nil {
		return nil, err
	}
	g, err := buildScopeGraph(q, tree.RootNode(), f.src)
	if err != nil {
		return nil, &QueryError{Language: f.lang.Name(), Query: queryScope.String(), Err: err}
	}
	return g, nil
}

// Filemap renders the file skeleton.
func (f *File) Filemap(opts render.Options) (string, error) {
	tree, err := f.take()
	if err != nil {
		return "", err
	}
	defer tree.Close()
	return f.lang.Filemap(tree.RootNode(), f.src, opts)
}

// GetDefinition renders the skeleton with the entities declared on the
// given 1-based rows expanded, and returns their definitions.
func (f *File) GetDefinition(rows []int, path string, opts render.Options) (string, []chunk.Definition, error) {
	tree, err := f.take()
	if err != nil {
		return "", nil, err
	}
	defer tree.Close()
	return f.lang.Definitions(tree.RootNode(), f.src, rows, path, opts)
}

// CompleteChunks renders the file into buf with every entity covered by
// chunks expanded.
func (f *File) CompleteChunks(chunks []chunk.View, buf *render.Buffer) error {
	tree, err := f.take()
	if err != nil {
		return err
	}
	defer tree.Close()
	return f.lang.CompleteChunks(tree.RootNode(), f.src, chunks, buf)
}
