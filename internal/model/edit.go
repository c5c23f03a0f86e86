package model

import (
	"fmt"
	"strings"
)

// EditKind is the tag of an Edit.
type EditKind int

const (
	// EditRemove deletes Target.
	EditRemove EditKind = iota
	// EditReplace substitutes Node for Target.
	EditReplace
	// EditInsert adds Node to the List of Owner.
	EditInsert
	// EditSet assigns Node to the empty Property of Target.
	EditSet
)

func (k EditKind) String() string {
	switch k {
	case EditRemove:
		return "remove"
	case EditReplace:
		return "replace"
	case EditInsert:
		return "insert"
	case EditSet:
		return "set"
	}

	return fmt.Sprintf("EditKind(%d)", int(k))
}

// Property names a single-valued child slot of a node.
type Property string

// PropertyReceiver is the receiver expression of a call.
const PropertyReceiver Property = "receiver"

// Position locates an insertion inside a list. AtHead wins over Index.
type Position struct {
	AtHead bool
	Index  int
}

// Head is the head-of-list position.
var Head = Position{AtHead: true}

// anchor returns the original-list index the insertion is anchored to.
func (p Position) anchor() int {
	if p.AtHead || p.Index < 0 {
		return 0
	}

	return p.Index
}

// Edit is one structural mutation of a Tree.
type Edit struct {
	Kind     EditKind
	Target   NodeID
	Owner    NodeID
	List     ListKind
	Position Position
	Property Property
	Node     Synthetic
	// Unit groups edits emitted together by one composite step.
	Unit int
}

// Anchor returns the existing node the edit is attached to.
func (e Edit) Anchor() NodeID {
	if e.Kind == EditInsert {
		return e.Owner
	}

	return e.Target
}

func (e Edit) String() string {
	switch e.Kind {
	case EditRemove:
		return fmt.Sprintf("remove #%d", e.Target)
	case EditReplace:
		return fmt.Sprintf("replace #%d with %s", e.Target, e.Node)
	case EditInsert:
		where := "head"
		if !e.Position.AtHead {
			where = fmt.Sprintf("index %d", e.Position.Index)
		}

		return fmt.Sprintf("insert %s into %s of #%d at %s", e.Node, e.List, e.Owner, where)
	case EditSet:
		return fmt.Sprintf("set %s of #%d to %s", e.Property, e.Target, e.Node)
	}

	return e.Kind.String()
}

// SyntheticKind identifies the shape of a synthesized node.
type SyntheticKind string

const (
	// SyntheticAnnotation is a new declaration annotation.
	SyntheticAnnotation SyntheticKind = "annotation"
	// SyntheticImport is a new import declaration.
	SyntheticImport SyntheticKind = "import"
	// SyntheticName is a simple or qualified name.
	SyntheticName SyntheticKind = "name"
)

// Synthetic is a node created by the rewrite engine. It has no source range.
type Synthetic interface {
	SyntheticKind() SyntheticKind
	String() string
}

// LiteralKind is the kind of an attribute value.
type LiteralKind string

const (
	LiteralBoolean    LiteralKind = "boolean"
	LiteralString     LiteralKind = "string"
	LiteralNumber     LiteralKind = "number"
	LiteralIdentifier LiteralKind = "identifier"
	LiteralType       LiteralKind = "type"
)

// Literal is an attribute value. Text is the value without any quoting or
// class-literal suffix.
type Literal struct {
	Kind LiteralKind
	Text string
}

// BoolLiteral returns a boolean literal.
func BoolLiteral(v bool) Literal {
	if v {
		return Literal{Kind: LiteralBoolean, Text: "true"}
	}

	return Literal{Kind: LiteralBoolean, Text: "false"}
}

// StringLiteral returns a string literal.
func StringLiteral(s string) Literal {
	return Literal{Kind: LiteralString, Text: s}
}

// TypeLiteral returns a type reference (class literal).
func TypeLiteral(name string) Literal {
	return Literal{Kind: LiteralType, Text: name}
}

func (l Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return fmt.Sprintf("%q", l.Text)
	case LiteralType:
		return l.Text + ".class"
	}

	return l.Text
}

// Attribute is one key/value pair of a valued annotation.
type Attribute struct {
	Key   string
	Value Literal
}

// AnnotationNode is a synthesized annotation. With no attributes it is a
// marker annotation.
type AnnotationNode struct {
	Name       string
	Attributes []Attribute
}

// SyntheticKind implements Synthetic.
func (a *AnnotationNode) SyntheticKind() SyntheticKind { return SyntheticAnnotation }

// Marker reports whether the annotation carries no attributes.
func (a *AnnotationNode) Marker() bool {
	return len(a.Attributes) == 0
}

func (a *AnnotationNode) String() string {
	if a.Marker() {
		return "@" + a.Name
	}

	parts := make([]string, 0, len(a.Attributes))
	for _, attr := range a.Attributes {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}

	return "@" + a.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ImportNode is a synthesized import declaration.
type ImportNode struct {
	Name   string
	Static bool
}

// SyntheticKind implements Synthetic.
func (i *ImportNode) SyntheticKind() SyntheticKind { return SyntheticImport }

func (i *ImportNode) String() string {
	if i.Static {
		return "import static " + i.Name
	}

	return "import " + i.Name
}

// NameNode is a synthesized simple or qualified name.
type NameNode struct {
	Name string
}

// SyntheticKind implements Synthetic.
func (n *NameNode) SyntheticKind() SyntheticKind { return SyntheticName }

func (n *NameNode) String() string {
	return n.Name
}
