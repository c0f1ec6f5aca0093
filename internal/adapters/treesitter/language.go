package treesitter

import (
	"errors"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/render"
)

// Language is the capability set every supported grammar provides: the
// grammar itself, two structural queries, and the three renderers.
type Language interface {
	// Name is the canonical lowercase name, also used for dynamic grammar
	// lookup (tree_sitter_{name}).
	Name() string
	// IDs are the identifiers callers may pass to TryBuild, matched
	// case-insensitively.
	IDs() []string
	Extensions() []string
	Grammar() (*tree_sitter.Language, error)
	HoverableQuery() string
	ScopeQuery() string

	Filemap(root *tree_sitter.Node, src []byte, opts render.Options) (string, error)
	Definitions(root *tree_sitter.Node, src []byte, rows []int, path string, opts render.Options) (string, []chunk.Definition, error)
	CompleteChunks(root *tree_sitter.Node, src []byte, chunks []chunk.View, buf *render.Buffer) error
}

// errNoBuiltinGrammar is returned by Grammar when the binary was built
// without the grammar compiled in; the registry then tries the dynamic
// loader.
var errNoBuiltinGrammar = errors.New("grammar not compiled in")

// role decides how an entity renders when it is not expanded.
type role int

const (
	// roleLeaf collapses the body to the language placeholder.
	roleLeaf role = iota
	// roleContainer renders the header, then its members one level deeper.
	roleContainer
	// roleWhole renders the node verbatim.
	roleWhole
)

// entityRule describes one entity node kind.
type entityRule struct {
	kind      string // function, method, class, struct, interface, trait, enum, impl, module, type
	role      role
	nameField string // field holding the name; "" means "name"
}

// definitionKinds maps entity kinds to the Definition variant reported for
// them. Kinds missing here are walked and expanded but never reported.
var definitionKinds = map[string]chunk.DefinitionKind{
	"function":  chunk.FunctionDef,
	"method":    chunk.FunctionDef,
	"class":     chunk.ClassDef,
	"struct":    chunk.ClassDef,
	"interface": chunk.ClassDef,
	"trait":     chunk.ClassDef,
	"enum":      chunk.ClassDef,
	"impl":      chunk.ClassDef,
	"module":    chunk.ClassDef,
	"type":      chunk.ClassDef,
}

// ruleLanguage is a Language driven by node-kind tables. There is one
// value per grammar.
type ruleLanguage struct {
	name       string
	ids        []string
	extensions []string
	grammar    func() *tree_sitter.Language // nil when not compiled in

	hoverableQuery string
	scopeQuery     string

	entities map[string]entityRule
	// wrappers are node kinds that decorate one entity (export, decorators).
	// The value is the field holding the entity; "" means the last named
	// child that is an entity.
	wrappers map[string]string
	// keep lists non-entity kinds summarized on one line in skeletons.
	keep map[string]bool

	placeholder string
}

func (l *ruleLanguage) Name() string         { return l.name }
func (l *ruleLanguage) IDs() []string        { return l.ids }
func (l *ruleLanguage) Extensions() []string { return l.extensions }
func (l *ruleLanguage) HoverableQuery() string {
	return l.hoverableQuery
}
func (l *ruleLanguage) ScopeQuery() string {
	return l.scopeQuery
}

func (l *ruleLanguage) Grammar() (*tree_sitter.Language, error) {
	if l.grammar == nil {
		return nil, errNoBuiltinGrammar
	}
	return l.grammar(), nil
}

func (l *ruleLanguage) Filemap(root *tree_sitter.Node, src []byte, opts render.Options) (string, error) {
	return render.Filemap(l.tree(root, src), opts)
}

func (l *ruleLanguage) Definitions(root *tree_sitter.Node, src []byte, rows []int, path string, opts render.Options) (string, []chunk.Definition, error) {
	return render.Definitions(l.tree(root, src), path, rows, opts)
}

func (l *ruleLanguage) CompleteChunks(root *tree_sitter.Node, src []byte, chunks []chunk.View, buf *render.Buffer) error {
	return render.CompleteChunks(l.tree(root, src), chunks, buf)
}

func (l *ruleLanguage) tree(root *tree_sitter.Node, src []byte) *walker {
	return &walker{lang: l, root: root, src: src}
}

// definition returns the Definition reported for an expanded entity, or nil
// when the entity kind is not classified as a function or class.
func (l *ruleLanguage) definition(rule entityRule, path string, line int, name string) *chunk.Definition {
	kind, ok := definitionKinds[rule.kind]
	if !ok {
		return nil
	}
	return &chunk.Definition{Kind: kind, FilePath: path, LineNumber: line, Name: name}
}
