// Package model defines the data structures shared by the parser, the
// classifier, the rewrite engine and the materializer.
package model

import "fmt"

// NodeID is an opaque handle to a node of a Tree. The zero value means
// "no node".
type NodeID uint32

// NoNode is the zero NodeID.
const NoNode NodeID = 0

// NodeKind identifies the syntactic role of a node.
type NodeKind string

const (
	// KindUnit is the compilation unit (root). Owns the imports list.
	KindUnit NodeKind = "unit"
	// KindImport is an import declaration. Name holds the qualified name.
	KindImport NodeKind = "import"
	// KindClass is a class declaration. Name holds the simple class name.
	KindClass NodeKind = "class"
	// KindTypeRef is a supertype clause ("extends TestCase"). Type holds the referenced type.
	KindTypeRef NodeKind = "type_ref"
	// KindMethod is a method declaration. Owns the modifiers list.
	KindMethod NodeKind = "method"
	// KindConstructor is a constructor declaration. Owns the modifiers list.
	KindConstructor NodeKind = "constructor"
	// KindAnnotation is a declaration annotation. Name holds its rendered text ("@Before").
	KindAnnotation NodeKind = "annotation"
	// KindModifier is a keyword modifier ("public", "static").
	KindModifier NodeKind = "modifier"
	// KindPair is an annotation attribute pair. Key and Value point at its children.
	KindPair NodeKind = "pair"
	// KindIdentifier is a bare identifier.
	KindIdentifier NodeKind = "identifier"
	// KindCall is a method invocation. Name holds the invoked method name.
	KindCall NodeKind = "call"
	// KindExpression is an arbitrary expression, e.g. a call receiver.
	KindExpression NodeKind = "expression"
	// KindStatement is an expression statement.
	KindStatement NodeKind = "statement"
	// KindSuperCall is an explicit super constructor invocation.
	KindSuperCall NodeKind = "super_call"
)

// ListKind identifies one of the ordered child lists of a node.
type ListKind string

const (
	// ListImports is the import list of a compilation unit.
	ListImports ListKind = "imports"
	// ListModifiers is the modifier/annotation list of a declaration.
	ListModifiers ListKind = "modifiers"
)

// Range is a half-open byte range [Start, End) into the source text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether o lies within r.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// NodeList is an ordered child list. Tail is the byte offset where an entry
// goes when it has to follow every surviving item.
type NodeList struct {
	Items []NodeID
	Tail  int
}

// Node is one syntax tree node. Only the fields meaningful for its Kind are set.
type Node struct {
	ID     NodeID
	Kind   NodeKind
	Range  Range
	Parent NodeID

	Name     string
	Type     string
	Static   bool
	OnDemand bool
	Arity    int

	Receiver NodeID
	Key      NodeID
	Value    NodeID

	Lists map[ListKind]NodeList
}

// List returns the named child list of the node.
func (n Node) List(kind ListKind) NodeList {
	return n.Lists[kind]
}

// Tree is an immutable syntax tree over one source file. Trees are built with
// a TreeBuilder and never modified afterwards; every change is expressed as an
// Edit.
type Tree struct {
	path   Path
	source []byte
	root   NodeID
	nodes  []Node
}

// Path returns the file the tree was parsed from.
func (t *Tree) Path() Path {
	return t.path
}

// Source returns the original source text. Callers must not modify it.
func (t *Tree) Source() []byte {
	return t.source
}

// Root returns the compilation unit node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Has reports whether id refers to a node of this tree.
func (t *Tree) Has(id NodeID) bool {
	return id != NoNode && int(id) <= len(t.nodes)
}

// Node returns the node for id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.Has(id) {
		return Node{}, false
	}

	return t.nodes[id-1], true
}

// Text returns the source text covered by the node.
func (t *Tree) Text(id NodeID) string {
	n, ok := t.Node(id)
	if !ok {
		return ""
	}

	return string(t.source[n.Range.Start:n.Range.End])
}

// Walk calls fn for every node in creation order (parents before children).
func (t *Tree) Walk(fn func(Node) bool) {
	for _, n := range t.nodes {
		if !fn(n) {
			return
		}
	}
}

// Ancestor returns the closest ancestor of id with the given kind.
func (t *Tree) Ancestor(id NodeID, kind NodeKind) (Node, bool) {
	n, ok := t.Node(id)
	for ok && n.Parent != NoNode {
		n, ok = t.Node(n.Parent)
		if ok && n.Kind == kind {
			return n, true
		}
	}

	return Node{}, false
}

// TreeBuilder accumulates nodes for a Tree.
type TreeBuilder struct {
	tree *Tree
}

// NewTreeBuilder starts a tree over source.
func NewTreeBuilder(path Path, source []byte) *TreeBuilder {
	return &TreeBuilder{tree: &Tree{path: path, source: source}}
}

// Add registers n and returns its assigned id. n.ID is ignored.
func (b *TreeBuilder) Add(n Node) NodeID {
	n.ID = NodeID(len(b.tree.nodes) + 1)
	b.tree.nodes = append(b.tree.nodes, n)

	if n.Parent == NoNode && b.tree.root == NoNode && n.Kind == KindUnit {
		b.tree.root = n.ID
	}

	return n.ID
}

// Update replaces the fields of an already added node.
func (b *TreeBuilder) Update(id NodeID, fn func(*Node)) {
	if !b.tree.Has(id) {
		return
	}

	fn(&b.tree.nodes[id-1])
}

// SetList sets the child list of owner.
func (b *TreeBuilder) SetList(owner NodeID, kind ListKind, list NodeList) {
	b.Update(owner, func(n *Node) {
		if n.Lists == nil {
			n.Lists = make(map[ListKind]NodeList)
		}

		n.Lists[kind] = list
	})
}

// Build finalizes the tree. The builder must not be used afterwards.
func (b *TreeBuilder) Build() *Tree {
	t := b.tree
	b.tree = nil

	return t
}
