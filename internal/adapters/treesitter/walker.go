package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/xci/internal/domain/entity"
	"github.com/corey/xci/internal/domain/render"
)

// walker renders one parsed file for a ruleLanguage. It implements
// render.Tree.
type walker struct {
	lang *ruleLanguage
	root *tree_sitter.Node
	src  []byte
}

var _ render.Tree = (*walker)(nil)

// EntityPositions lists every entity in the file, outer before inner.
func (w *walker) EntityPositions() ([]entity.Position, error) {
	var out []entity.Position
	if err := w.collect(w.root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *walker) collect(n *tree_sitter.Node, out *[]entity.Position) error {
	if rule, ok := w.lang.entities[n.Kind()]; ok {
		name, err := w.entityName(n, rule)
		if err != nil {
			return err
		}
		*out = append(*out, entity.NewPosition(startRow(n), endRow(n), name))
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if err := w.collect(n.NamedChild(i), out); err != nil {
			return err
		}
	}
	return nil
}

// Walk renders the file depth-first.
func (w *walker) Walk(st *render.State) error {
	return w.walkMembers(w.root, 0, st)
}

// noRow is the header row before any enclosing header was written.
const noRow = -1

func (w *walker) walkMembers(n *tree_sitter.Node, depth int, st *render.State) error {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if err := w.walkNode(n.NamedChild(i), depth, noRow, st); err != nil {
			return err
		}
	}
	return nil
}

// walkNode renders n. headerRow is the row of the enclosing header line
// already written for n's parent, or noRow.
func (w *walker) walkNode(n *tree_sitter.Node, depth, headerRow int, st *render.State) error {
	if rule, ok := w.lang.entities[n.Kind()]; ok {
		return w.walkEntity(n, n, rule, depth, st)
	}
	if field, ok := w.lang.wrappers[n.Kind()]; ok {
		if inner := w.wrapped(n, field); inner != nil {
			return w.walkEntity(n, inner, w.lang.entities[inner.Kind()], depth, st)
		}
	}
	return w.walkOther(n, depth, headerRow, st)
}

// wrapped returns the entity decorated by wrapper n, or nil.
func (w *walker) wrapped(n *tree_sitter.Node, field string) *tree_sitter.Node {
	var inner *tree_sitter.Node
	if field != "" {
		inner = n.ChildByFieldName(field)
	}
	if inner == nil {
		for i := n.NamedChildCount(); i > 0; i-- {
			c := n.NamedChild(i - 1)
			if _, ok := w.lang.entities[c.Kind()]; ok {
				inner = c
				break
			}
		}
	}
	if inner == nil {
		return nil
	}
	if _, ok := w.lang.entities[inner.Kind()]; !ok {
		return nil
	}
	return inner
}

// walkEntity renders entity n. outer is n itself or the wrapper around it;
// expansion covers outer while hit detection uses n's own span. A hit is
// first rendered collapsed, then rewound and replaced by the full source.
func (w *walker) walkEntity(outer, n *tree_sitter.Node, rule entityRule, depth int, st *render.State) error {
	start, end := startRow(n), endRow(n)
	name, err := w.entityName(n, rule)
	if err != nil {
		return err
	}
	indent := st.Indent(depth)
	hit := st.IsDefinitionHit(name, start, end)
	mark := st.Buf.Mark()

	head, err := w.writePrefix(outer, n, indent, st)
	if err != nil {
		return err
	}
	body := n.ChildByFieldName("body")
	open := rule.role == roleContainer || st.EnclosesPrecise(start, end)
	if !hit && open && rule.role != roleWhole && body != nil {
		return w.walkContainer(n, body, head, depth, st)
	}
	if err := w.writeCollapsed(n, body, rule, head, st); err != nil {
		return err
	}
	if !hit {
		return nil
	}

	text, err := nodeText(outer, w.src)
	if err != nil {
		return err
	}
	st.Buf.Body(text, startRow(outer), indent, mark)
	st.Record(name, w.lang.definition(rule, st.Path, start+1, name))
	return nil
}

// writePrefix emits the wrapper text in front of n (decorators, export) and
// returns what the entity's own first line starts with.
func (w *walker) writePrefix(outer, n *tree_sitter.Node, indent string, st *render.State) (string, error) {
	if outer == n {
		return indent, nil
	}
	prefix, err := sliceText(w.src, outer.StartByte(), n.StartByte())
	if err != nil {
		return "", err
	}
	// A prefix ending on its own line ("@decorator\n    ") leaves the
	// entity to start a fresh, indented line.
	head := ""
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 && strings.TrimSpace(prefix[i+1:]) == "" {
		prefix = prefix[:i+1]
		head = indent
	}
	st.Buf.AppendSource(reindent(prefix, indent), startRow(outer))
	return head, nil
}

// writeCollapsed emits n without its body: whole-role entities verbatim,
// others as their header and the placeholder.
func (w *walker) writeCollapsed(n, body *tree_sitter.Node, rule entityRule, head string, st *render.State) error {
	if rule.role == roleWhole || body == nil {
		text, err := nodeText(n, w.src)
		if err != nil {
			return err
		}
		st.Buf.AppendSource(head+text+"\n", startRow(n))
		return nil
	}
	header, err := w.header(n, body)
	if err != nil {
		return err
	}
	st.Buf.AppendSource(head+header+" "+w.lang.placeholder+"\n", startRow(n))
	return nil
}

// walkContainer renders the header of n, its body members one level deeper,
// then the closing brace if the body has one.
func (w *walker) walkContainer(n, body *tree_sitter.Node, head string, depth int, st *render.State) error {
	header, err := w.header(n, body)
	if err != nil {
		return err
	}
	bodyText, err := nodeText(body, w.src)
	if err != nil {
		return err
	}
	braced := strings.HasPrefix(bodyText, "{")
	if braced {
		header += " {"
	}
	st.Buf.AppendSource(head+header+"\n", startRow(n))

	if err := w.walkMembers(body, depth+1, st); err != nil {
		return err
	}
	if braced && strings.HasSuffix(bodyText, "}") {
		st.Buf.Append(st.Indent(depth)+"}\n", endRow(body))
	}
	return nil
}

// walkOther renders a node that is not an entity. Completion emits it in
// full when it touches a requested chunk. A node with entities below it is
// opened up so they render; otherwise only kept kinds show, as their first
// line.
func (w *walker) walkOther(n *tree_sitter.Node, depth, headerRow int, st *render.State) error {
	start, end := startRow(n), endRow(n)
	nested := w.containsEntity(n)

	switch {
	case start == headerRow && !nested:
		// Part of the header line already written.
		return nil
	case start != headerRow && st.Mode == render.ModeComplete && st.IsIntersecting(start, end):
		text, err := nodeText(n, w.src)
		if err != nil {
			return err
		}
		st.Buf.AppendSource(st.Indent(depth)+text+"\n", start)
		return nil
	case nested:
		return w.walkEnclosing(n, depth, headerRow, st)
	case !w.kept(n):
		return nil
	}

	text, err := nodeText(n, w.src)
	if err != nil {
		return err
	}
	line, _, more := strings.Cut(text, "\n")
	if more {
		line = strings.TrimRight(line, " \t\r") + " ..."
	}
	st.Buf.Append(st.Indent(depth)+line+"\n", start)
	return nil
}

// walkEnclosing renders a non-entity node with entities below it, such as
// an if statement holding function definitions. A node opening its own
// line writes that line as a header and its children go one level deeper.
// Nodes starting with their first child (blocks, declarators) write nothing
// themselves.
func (w *walker) walkEnclosing(n *tree_sitter.Node, depth, headerRow int, st *render.State) error {
	childDepth := depth
	if w.opensLine(n, headerRow) {
		line, err := sourceLine(w.src, n)
		if err != nil {
			return err
		}
		st.Buf.Append(st.Indent(depth)+line+"\n", startRow(n))
		headerRow = startRow(n)
		childDepth = depth + 1
	}

	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		d := childDepth
		// Clauses like else or except line up with the header they follow.
		if childDepth > depth && w.opensLine(c, headerRow) && w.containsEntity(c) {
			d = depth
		}
		if err := w.walkNode(c, d, headerRow, st); err != nil {
			return err
		}
	}
	return nil
}

// opensLine reports whether n starts a line of its own below headerRow with
// leading text that belongs to no child, like a keyword.
func (w *walker) opensLine(n *tree_sitter.Node, headerRow int) bool {
	if startRow(n) == headerRow {
		return false
	}
	return n.NamedChildCount() == 0 || n.NamedChild(0).StartByte() != n.StartByte()
}

// containsEntity reports whether any descendant of n is an entity.
func (w *walker) containsEntity(n *tree_sitter.Node) bool {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if _, ok := w.lang.entities[c.Kind()]; ok {
			return true
		}
		if w.containsEntity(c) {
			return true
		}
	}
	return false
}

// kept reports whether a non-entity node is summarized in skeletons. A
// wrapper around something other than an entity (export const, export
// type) is part of the module's surface and always kept.
func (w *walker) kept(n *tree_sitter.Node) bool {
	if w.lang.keep[n.Kind()] {
		return true
	}
	_, ok := w.lang.wrappers[n.Kind()]
	return ok
}

// header returns the source of n up to its body, trailing space trimmed.
func (w *walker) header(n, body *tree_sitter.Node) (string, error) {
	text, err := sliceText(w.src, n.StartByte(), body.StartByte())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, " \t\r\n"), nil
}

// entityName finds the identifier an entity is known by: its name field,
// the name field of a direct child (Go type specs), or the first
// identifier-like child.
func (w *walker) entityName(n *tree_sitter.Node, rule entityRule) (string, error) {
	field := rule.nameField
	if field == "" {
		field = "name"
	}
	if c := n.ChildByFieldName(field); c != nil {
		return nodeText(c, w.src)
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i).ChildByFieldName("name"); c != nil {
			return nodeText(c, w.src)
		}
	}
	for _, kind := range nameKinds {
		if c := childByKind(n, kind); c != nil {
			return nodeText(c, w.src)
		}
	}
	return "", nil
}
