package treesitter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Registry maps language identifiers and file extensions to Languages and
// resolves their grammars, compiled-in first, then from shared libraries.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	langs  []Language
	byID   map[string]Language // lowercase id -> language
	byExt  map[string]Language // lowercase extension -> language
	loader *DynamicLoader

	queries *queryCache
}

// NewRegistry creates a registry with the built-in languages registered.
func NewRegistry() *Registry {
	r := &Registry{
		byID:    make(map[string]Language),
		byExt:   make(map[string]Language),
		queries: newQueryCache(defaultQueryCacheSize),
	}
	for _, l := range builtinLanguages() {
		r.Register(l)
	}
	return r
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry used by TryBuild.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds l under its ids and extensions. Later registrations win.
func (r *Registry) Register(l Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.langs = append(r.langs, l)
	r.byID[strings.ToLower(l.Name())] = l
	for _, id := range l.IDs() {
		r.byID[strings.ToLower(id)] = l
	}
	for _, ext := range l.Extensions() {
		r.byExt[strings.ToLower(ext)] = l
	}
}

// Lookup finds a language by identifier, ignoring case.
func (r *Registry) Lookup(id string) (Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byID[strings.ToLower(id)]
	return l, ok
}

// ForPath finds the language for a file by its extension.
func (r *Registry) ForPath(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byExt[ext]
	return l, ok
}

// SupportsExtension reports whether files with ext (".go") can be parsed.
func (r *Registry) SupportsExtension(ext string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Languages returns the registered languages sorted by name.
func (r *Registry) Languages() []Language {
	r.mu.RLock()
	out := make([]Language, len(r.langs))
	copy(out, r.langs)
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// SetGrammarPaths configures loading grammars from shared libraries found in
// paths. Project-local paths should come first, global paths last.
func (r *Registry) SetGrammarPaths(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loader = NewDynamicLoader(paths)
}

// Loader returns the dynamic grammar loader, or nil if not configured.
func (r *Registry) Loader() *DynamicLoader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loader
}

// Available reports whether a grammar can be obtained for l without
// loading it.
func (r *Registry) Available(l Language) bool {
	if _, err := l.Grammar(); err == nil {
		return true
	}
	if dl := r.Loader(); dl != nil {
		return dl.GrammarPath(l.Name()) != ""
	}
	return false
}

// grammar resolves the grammar for l.
func (r *Registry) grammar(l Language) (*tree_sitter.Language, error) {
	g, err := l.Grammar()
	if err == nil && g != nil {
		return g, nil
	}
	dl := r.Loader()
	if dl == nil {
		if err == nil {
			err = errNoBuiltinGrammar
		}
		return nil, fmt.Errorf("%s: %w", l.Name(), err)
	}
	return dl.LoadGrammar(l.Name())
}
