package treesitter

import (
	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/render"
	"github.com/corey/xci/internal/ports"
)

// Engine implements ports.Intelligence on a Registry. Every call builds and
// consumes its own File.
type Engine struct {
	registry *Registry
}

var _ ports.Intelligence = (*Engine)(nil)

// NewEngine creates an engine over r, or the default registry when r is nil.
func NewEngine(r *Registry) *Engine {
	if r == nil {
		r = DefaultRegistry()
	}
	return &Engine{registry: r}
}

// Registry returns the registry the engine parses with.
func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) LanguageFor(path string) (string, bool) {
	l, ok := e.registry.ForPath(path)
	if !ok {
		return "", false
	}
	return l.Name(), true
}

func (e *Engine) Filemap(lang string, src []byte, opts render.Options) (string, error) {
	f, err := e.registry.TryBuild(src, lang)
	if err != nil {
		return "", err
	}
	return f.Filemap(opts)
}

func (e *Engine) Definitions(lang string, src []byte, path string, rows []int, opts render.Options) (string, []chunk.Definition, error) {
	f, err := e.registry.TryBuild(src, lang)
	if err != nil {
		return "", nil, err
	}
	return f.GetDefinition(rows, path, opts)
}

func (e *Engine) CompleteChunks(lang string, src []byte, chunks []chunk.View, buf *render.Buffer) error {
	f, err := e.registry.TryBuild(src, lang)
	if err != nil {
		return err
	}
	return f.CompleteChunks(chunks, buf)
}

func (e *Engine) Symbols(lang string, src []byte) ([]ports.NamedSymbol, error) {
	f, err := e.registry.TryBuild(src, lang)
	if err != nil {
		return nil, err
	}
	g, err := f.ScopeGraph()
	if err != nil {
		return nil, err
	}
	syms := g.Symbols()
	out := make([]ports.NamedSymbol, len(syms))
	for i, s := range syms {
		out[i] = ports.NamedSymbol{Name: g.SymbolName(i), Symbol: s}
	}
	return out, nil
}

func (e *Engine) HoverableRanges(lang string, src []byte) ([]chunk.TextRange, error) {
	f, err := e.registry.TryBuild(src, lang)
	if err != nil {
		return nil, err
	}
	return f.HoverableRanges()
}
