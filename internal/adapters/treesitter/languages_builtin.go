//go:build !lean

package treesitter

// This file attaches the compiled-in grammars. It is included in the default
// build but excluded with -tags lean, which produces a binary that loads
// every grammar from .so/.dylib files through the DynamicLoader.

import (
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

func grammarOf(fn func() unsafe.Pointer) func() *tree_sitter.Language {
	return sync.OnceValue(func() *tree_sitter.Language {
		return langPtr(fn())
	})
}

var builtinGrammars = map[string]func() *tree_sitter.Language{
	"go":         grammarOf(ts_go.Language),
	"python":     grammarOf(ts_python.Language),
	"javascript": grammarOf(ts_javascript.Language),
	"typescript": grammarOf(ts_typescript.LanguageTypescript),
	"tsx":        grammarOf(ts_typescript.LanguageTSX),
	"rust":       grammarOf(ts_rust.Language),
	"java":       grammarOf(ts_java.Language),
}
