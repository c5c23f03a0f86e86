package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// ErrSyntax reports a source file the parser could not fully recognize.
// Converting such a file could corrupt it, so it is rejected.
var ErrSyntax = errors.New("syntax error")

// JavaParserAdapter turns Java source text into a model.Tree, keeping
// tree-sitter out of the domain layer.
type JavaParserAdapter interface {
	// Parse builds the tree for src. Nodes carry byte ranges into src.
	Parse(ctx context.Context, path m.Path, src []byte) (*m.Tree, error)
}

// LocalJavaParserAdapter is the tree-sitter backed JavaParserAdapter. Each
// Parse call uses its own parser, so one adapter may serve concurrent callers.
type LocalJavaParserAdapter struct{}

// NewLocalJavaParserAdapter constructs a LocalJavaParserAdapter.
func NewLocalJavaParserAdapter() *LocalJavaParserAdapter {
	return &LocalJavaParserAdapter{}
}

// Parse implements JavaParserAdapter.
func (a *LocalJavaParserAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*m.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			pos := bad.StartPoint()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, pos.Row+1, pos.Column+1, ErrSyntax)
		}

		return nil, fmt.Errorf("%s: %w", path, ErrSyntax)
	}

	b := &javaTreeBuilder{src: src, tb: m.NewTreeBuilder(path, src)}
	b.unit(root)

	return b.tb.Build(), nil
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}

		if bad := firstErrorNode(child); bad != nil {
			return bad
		}
	}

	return nil
}

// javaTreeBuilder registers the tree-sitter nodes the rewrite cares about.
// Everything else is walked through, attaching its interesting descendants to
// the closest registered ancestor.
type javaTreeBuilder struct {
	src []byte
	tb  *m.TreeBuilder
}

func (b *javaTreeBuilder) text(n *sitter.Node) string {
	return n.Content(b.src)
}

func rangeOf(n *sitter.Node) m.Range {
	return m.Range{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// lineEnd returns the offset just past the newline ending the line that
// contains off, or len(src).
func (b *javaTreeBuilder) lineEnd(off int) int {
	if i := bytes.IndexByte(b.src[off:], '\n'); i >= 0 {
		return off + i + 1
	}

	return len(b.src)
}

func (b *javaTreeBuilder) unit(root *sitter.Node) {
	unit := b.tb.Add(m.Node{Kind: m.KindUnit, Range: rangeOf(root)})

	var imports []m.NodeID

	tail := 0

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		switch child.Type() {
		case "package_declaration":
			if len(imports) == 0 {
				tail = b.lineEnd(int(child.EndByte()))
			}
		case "import_declaration":
			imports = append(imports, b.importDecl(child, unit))
			tail = b.lineEnd(int(child.EndByte()))
		default:
			b.walk(child, unit)
		}
	}

	b.tb.SetList(unit, m.ListImports, m.NodeList{Items: imports, Tail: tail})
}

func (b *javaTreeBuilder) importDecl(n *sitter.Node, parent m.NodeID) m.NodeID {
	node := m.Node{Kind: m.KindImport, Range: rangeOf(n), Parent: parent}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)

		switch child.Type() {
		case "static":
			node.Static = true
		case "asterisk":
			node.OnDemand = true
		case "identifier", "scoped_identifier":
			node.Name = b.text(child)
		}
	}

	if node.OnDemand {
		node.Name += ".*"
	}

	return b.tb.Add(node)
}

func (b *javaTreeBuilder) walk(n *sitter.Node, parent m.NodeID) {
	switch n.Type() {
	case "class_declaration":
		b.classDecl(n, parent)
	case "method_declaration":
		b.declaration(n, parent, m.KindMethod)
	case "constructor_declaration":
		b.declaration(n, parent, m.KindConstructor)
	case "method_invocation":
		b.call(n, parent)
	case "expression_statement":
		id := b.tb.Add(m.Node{Kind: m.KindStatement, Range: rangeOf(n), Parent: parent})
		b.walkChildren(n, id)
	case "explicit_constructor_invocation":
		b.constructorCall(n, parent)
	case "marker_annotation", "annotation", "line_comment", "block_comment":
		// Annotations outside a declaration's modifiers are never rewritten.
	default:
		b.walkChildren(n, parent)
	}
}

func (b *javaTreeBuilder) walkChildren(n *sitter.Node, parent m.NodeID) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.walk(n.NamedChild(i), parent)
	}
}

func (b *javaTreeBuilder) classDecl(n *sitter.Node, parent m.NodeID) {
	node := m.Node{Kind: m.KindClass, Range: rangeOf(n), Parent: parent}
	if name := n.ChildByFieldName("name"); name != nil {
		node.Name = b.text(name)
	}

	id := b.tb.Add(node)

	if super := n.ChildByFieldName("superclass"); super != nil && super.NamedChildCount() > 0 {
		b.tb.Add(m.Node{
			Kind:   m.KindTypeRef,
			Range:  rangeOf(super),
			Parent: id,
			Type:   b.text(super.NamedChild(0)),
		})
	}

	if body := n.ChildByFieldName("body"); body != nil {
		b.walkChildren(body, id)
	}
}

func (b *javaTreeBuilder) declaration(n *sitter.Node, parent m.NodeID, kind m.NodeKind) {
	node := m.Node{Kind: kind, Range: rangeOf(n), Parent: parent}
	if name := n.ChildByFieldName("name"); name != nil {
		node.Name = b.text(name)
	}

	if typ := n.ChildByFieldName("type"); typ != nil {
		node.Type = b.text(typ)
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			switch params.NamedChild(i).Type() {
			case "formal_parameter", "spread_parameter":
				node.Arity++
			}
		}
	}

	id := b.tb.Add(node)
	b.tb.SetList(id, m.ListModifiers, b.modifiers(n, id))

	if body := n.ChildByFieldName("body"); body != nil {
		b.walkChildren(body, id)
	}
}

// modifiers registers the annotation and keyword entries of a declaration.
// The tail is the start of the first child after the modifiers, so new
// entries land right before the return type or name.
func (b *javaTreeBuilder) modifiers(decl *sitter.Node, owner m.NodeID) m.NodeList {
	var mods *sitter.Node

	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if c := decl.NamedChild(i); c.Type() == "modifiers" {
			mods = c
			break
		}
	}

	if mods == nil {
		return m.NodeList{Tail: int(decl.StartByte())}
	}

	list := m.NodeList{Tail: int(mods.EndByte())}

	for i := 0; i < int(mods.ChildCount()); i++ {
		c := mods.Child(i)

		switch {
		case c.Type() == "marker_annotation" || c.Type() == "annotation":
			list.Items = append(list.Items, b.annotation(c, owner))
		case !c.IsNamed():
			list.Items = append(list.Items, b.tb.Add(m.Node{
				Kind:   m.KindModifier,
				Range:  rangeOf(c),
				Parent: owner,
				Name:   b.text(c),
			}))
		}
	}

	for i := 0; i < int(decl.ChildCount()); i++ {
		c := decl.Child(i)
		if int(c.StartByte()) >= int(mods.EndByte()) && c.Type() != "line_comment" && c.Type() != "block_comment" {
			list.Tail = int(c.StartByte())
			break
		}
	}

	return list
}

func (b *javaTreeBuilder) annotation(n *sitter.Node, owner m.NodeID) m.NodeID {
	node := m.Node{
		Kind:   m.KindAnnotation,
		Range:  rangeOf(n),
		Parent: owner,
		Name:   compactAnnotation(b.text(n)),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		node.Type = b.text(name)
	}

	id := b.tb.Add(node)

	args := n.ChildByFieldName("arguments")
	if args == nil {
		return id
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		pair := args.NamedChild(i)
		if pair.Type() != "element_value_pair" {
			continue
		}

		key, value := pair.ChildByFieldName("key"), pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}

		pairID := b.tb.Add(m.Node{Kind: m.KindPair, Range: rangeOf(pair), Parent: id, Name: b.text(key)})
		keyID := b.tb.Add(m.Node{Kind: m.KindIdentifier, Range: rangeOf(key), Parent: pairID, Name: b.text(key)})
		valueID := b.tb.Add(m.Node{Kind: m.KindExpression, Range: rangeOf(value), Parent: pairID, Name: b.text(value)})

		b.tb.Update(pairID, func(p *m.Node) {
			p.Key = keyID
			p.Value = valueID
		})
	}

	return id
}

func (b *javaTreeBuilder) call(n *sitter.Node, parent m.NodeID) {
	node := m.Node{Kind: m.KindCall, Range: rangeOf(n), Parent: parent}
	if name := n.ChildByFieldName("name"); name != nil {
		node.Name = b.text(name)
	}

	id := b.tb.Add(node)

	if object := n.ChildByFieldName("object"); object != nil {
		receiver := b.tb.Add(m.Node{Kind: m.KindExpression, Range: rangeOf(object), Parent: id, Name: b.text(object)})
		b.tb.Update(id, func(c *m.Node) { c.Receiver = receiver })
		b.walk(object, id)
	}

	if args := n.ChildByFieldName("arguments"); args != nil {
		b.walkChildren(args, id)
	}
}

func (b *javaTreeBuilder) constructorCall(n *sitter.Node, parent m.NodeID) {
	ctor := n.ChildByFieldName("constructor")
	if ctor == nil || ctor.Type() != "super" {
		b.walkChildren(n, parent)
		return
	}

	id := b.tb.Add(m.Node{Kind: m.KindSuperCall, Range: rangeOf(n), Parent: parent, Name: "super"})

	if args := n.ChildByFieldName("arguments"); args != nil {
		b.walkChildren(args, id)
	}
}

// compactAnnotation renders an annotation the way it is matched against
// profile names: whitespace outside string and char literals is dropped, so
// "@Test( timeout = 5 )" becomes "@Test(timeout=5)".
func compactAnnotation(text string) string {
	var sb strings.Builder

	var quote byte

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case quote != 0:
			sb.WriteByte(c)

			if c == '\\' && i+1 < len(text) {
				i++
				sb.WriteByte(text[i])
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			sb.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
