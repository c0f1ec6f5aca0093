//go:build lean

package treesitter

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// This file is included only when building with -tags lean. No grammar is
// compiled in; the registry loads every grammar from .so/.dylib files via
// the DynamicLoader (purego).
//
// Build with: go build -tags lean ./cmd/xci/

var builtinGrammars = map[string]func() *tree_sitter.Language{}
