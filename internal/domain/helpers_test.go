package domain

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"ngshift.dev/pkg/ngshift/internal/adapter"
	m "ngshift.dev/pkg/ngshift/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseJava(t *testing.T, src string) *m.Tree {
	t.Helper()

	tree, err := adapter.NewLocalJavaParserAdapter().Parse(context.Background(), "Fixture.java", []byte(src))
	require.NoError(t, err)

	return tree
}

// emptyClassification is a Classification with every optional reference unset.
func emptyClassification() m.Classification {
	return m.Classification{
		LegacyBaseTypeReference: m.NoNode,
		LegacySuiteMethod:       m.NoNode,
		SuperConstructorCall:    m.NoNode,
	}
}

func findNode(t *testing.T, tree *m.Tree, match func(m.Node) bool) m.Node {
	t.Helper()

	var found m.Node

	tree.Walk(func(n m.Node) bool {
		if match(n) {
			found = n
			return false
		}

		return true
	})

	require.NotEqual(t, m.NoNode, found.ID, "node not found")

	return found
}

func method(t *testing.T, tree *m.Tree, name string) m.NodeID {
	t.Helper()

	return findNode(t, tree, func(n m.Node) bool { return n.Kind == m.KindMethod && n.Name == name }).ID
}

func importNode(t *testing.T, tree *m.Tree, name string) m.NodeID {
	t.Helper()

	return findNode(t, tree, func(n m.Node) bool { return n.Kind == m.KindImport && n.Name == name }).ID
}

func call(t *testing.T, tree *m.Tree, name string) m.Node {
	t.Helper()

	return findNode(t, tree, func(n m.Node) bool { return n.Kind == m.KindCall && n.Name == name })
}

func annotation(t *testing.T, tree *m.Tree, owner m.NodeID, name string) m.NodeID {
	t.Helper()

	return findNode(t, tree, func(n m.Node) bool {
		return n.Kind == m.KindAnnotation && n.Parent == owner && n.Name == name
	}).ID
}

func baseType(t *testing.T, tree *m.Tree) m.NodeID {
	t.Helper()

	return findNode(t, tree, func(n m.Node) bool { return n.Kind == m.KindTypeRef }).ID
}

func pair(t *testing.T, tree *m.Tree, key string) m.Node {
	t.Helper()

	return findNode(t, tree, func(n m.Node) bool { return n.Kind == m.KindPair && n.Name == key })
}

// inserted returns the rendered names of the insertions into one list, in
// final list order.
func inserted(script m.EditScript, owner m.NodeID, list m.ListKind) []string {
	var names []string

	for _, e := range script.Insertions(owner, list) {
		names = append(names, e.Node.String())
	}

	return names
}

func editsOfKind(script m.EditScript, kind m.EditKind) []m.Edit {
	var out []m.Edit

	for _, e := range script.Edits() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}

	return out
}
