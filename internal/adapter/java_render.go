package adapter

import (
	"strconv"
	"strings"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// RenderJava returns the Java source text for a synthesized node.
func RenderJava(n m.Synthetic) string {
	switch node := n.(type) {
	case *m.ImportNode:
		if node.Static {
			return "import static " + node.Name + ";"
		}

		return "import " + node.Name + ";"

	case *m.AnnotationNode:
		if node.Marker() {
			return "@" + node.Name
		}

		attrs := make([]string, 0, len(node.Attributes))
		for _, a := range node.Attributes {
			attrs = append(attrs, a.Key+" = "+renderLiteral(a.Value))
		}

		return "@" + node.Name + "(" + strings.Join(attrs, ", ") + ")"

	case *m.NameNode:
		return node.Name
	}

	return ""
}

func renderLiteral(l m.Literal) string {
	switch l.Kind {
	case m.LiteralString:
		return strconv.Quote(l.Text)
	case m.LiteralType:
		return l.Text + ".class"
	}

	return l.Text
}
