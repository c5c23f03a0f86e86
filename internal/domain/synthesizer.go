package domain

import m "ngshift.dev/pkg/ngshift/internal/model"

// Synthesize builds a new declaration annotation. Without attributes the
// result is a marker annotation; otherwise it carries the attributes in the
// given order.
func Synthesize(name string, attributes ...m.Attribute) *m.AnnotationNode {
	a := &m.AnnotationNode{Name: name}
	if len(attributes) > 0 {
		a.Attributes = append([]m.Attribute(nil), attributes...)
	}

	return a
}

// newImport builds an import declaration node.
func newImport(name string, static bool) *m.ImportNode {
	return &m.ImportNode{Name: name, Static: static}
}

// newName builds a name node.
func newName(name string) *m.NameNode {
	return &m.NameNode{Name: name}
}
