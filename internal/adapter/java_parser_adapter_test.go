package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

const parserFixture = `package foo;

import java.util.List;
import static org.junit.Assert.*;
import static org.junit.Assert.assertEquals;

public class FooTest extends junit.framework.TestCase {
    public FooTest() {
        super("x");
    }

    @Test( timeout = 5 )
    @SuppressWarnings("a b")
    public static final void run(int a, String... rest) {
        Assert.assertTrue(a > 0);
        check();
    }

    void bare() {}
}
`

func parse(t *testing.T, src string) *m.Tree {
	t.Helper()

	tree, err := NewLocalJavaParserAdapter().Parse(context.Background(), "FooTest.java", []byte(src))
	require.NoError(t, err)

	return tree
}

func nodesOf(tree *m.Tree, kind m.NodeKind) []m.Node {
	var out []m.Node

	tree.Walk(func(n m.Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}

		return true
	})

	return out
}

func named(t *testing.T, tree *m.Tree, kind m.NodeKind, name string) m.Node {
	t.Helper()

	for _, n := range nodesOf(tree, kind) {
		if n.Name == name {
			return n
		}
	}

	require.Failf(t, "node not found", "%s %q", kind, name)

	return m.Node{}
}

func TestLocalJavaParserAdapter_Imports(t *testing.T) {
	tree := parse(t, parserFixture)

	root, ok := tree.Node(tree.Root())
	require.True(t, ok)
	assert.Equal(t, m.KindUnit, root.Kind)
	assert.Equal(t, m.Path("FooTest.java"), tree.Path())

	list := root.List(m.ListImports)
	require.Len(t, list.Items, 3)

	var got []m.Node

	for _, id := range list.Items {
		n, ok := tree.Node(id)
		require.True(t, ok)
		got = append(got, n)
	}

	assert.Equal(t, "java.util.List", got[0].Name)
	assert.False(t, got[0].Static)

	assert.Equal(t, "org.junit.Assert.*", got[1].Name)
	assert.True(t, got[1].Static)
	assert.True(t, got[1].OnDemand)

	assert.Equal(t, "org.junit.Assert.assertEquals", got[2].Name)
	assert.True(t, got[2].Static)
	assert.False(t, got[2].OnDemand)

	assert.Equal(t, "import java.util.List;", tree.Text(list.Items[0]))
	assert.True(t, strings.HasPrefix(string(tree.Source()[list.Tail:]), "\npublic class FooTest"))
}

func TestLocalJavaParserAdapter_EmptyImportList(t *testing.T) {
	tests := []struct {
		name string
		src  string
		tail int
	}{
		{"package only", "package foo;\n\nclass A {}\n", len("package foo;\n")},
		{"no package", "class A {}\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src)
			root, _ := tree.Node(tree.Root())

			assert.Empty(t, root.List(m.ListImports).Items)
			assert.Equal(t, tt.tail, root.List(m.ListImports).Tail)
		})
	}
}

func TestLocalJavaParserAdapter_Declarations(t *testing.T) {
	tree := parse(t, parserFixture)

	class := named(t, tree, m.KindClass, "FooTest")

	typeRefs := nodesOf(tree, m.KindTypeRef)
	require.Len(t, typeRefs, 1)
	assert.Equal(t, "junit.framework.TestCase", typeRefs[0].Type)
	assert.Equal(t, class.ID, typeRefs[0].Parent)
	assert.Equal(t, "extends junit.framework.TestCase", tree.Text(typeRefs[0].ID))

	run := named(t, tree, m.KindMethod, "run")
	assert.Equal(t, class.ID, run.Parent)
	assert.Equal(t, 2, run.Arity)
	assert.Equal(t, "void", run.Type)

	mods := run.List(m.ListModifiers)
	require.Len(t, mods.Items, 5)

	var kinds, names []string

	for _, id := range mods.Items {
		n, _ := tree.Node(id)
		kinds = append(kinds, string(n.Kind))
		names = append(names, n.Name)
	}

	assert.Equal(t, []string{"annotation", "annotation", "modifier", "modifier", "modifier"}, kinds)
	assert.Equal(t, []string{"@Test(timeout=5)", `@SuppressWarnings("a b")`, "public", "static", "final"}, names)
	assert.True(t, strings.HasPrefix(string(tree.Source()[mods.Tail:]), "void run("))

	bare := named(t, tree, m.KindMethod, "bare")
	assert.Empty(t, bare.List(m.ListModifiers).Items)
	assert.True(t, strings.HasPrefix(string(tree.Source()[bare.List(m.ListModifiers).Tail:]), "void bare()"))

	ctor := named(t, tree, m.KindConstructor, "FooTest")
	superCalls := nodesOf(tree, m.KindSuperCall)
	require.Len(t, superCalls, 1)
	assert.Equal(t, `super("x");`, tree.Text(superCalls[0].ID))

	owner, ok := tree.Ancestor(superCalls[0].ID, m.KindConstructor)
	require.True(t, ok)
	assert.Equal(t, ctor.ID, owner.ID)
}

func TestLocalJavaParserAdapter_AnnotationPairs(t *testing.T) {
	tree := parse(t, parserFixture)

	ann := named(t, tree, m.KindAnnotation, "@Test(timeout=5)")
	assert.Equal(t, "Test", ann.Type)

	pairs := nodesOf(tree, m.KindPair)
	require.Len(t, pairs, 1)
	assert.Equal(t, ann.ID, pairs[0].Parent)
	assert.Equal(t, "timeout", pairs[0].Name)
	assert.Equal(t, "timeout", tree.Text(pairs[0].Key))
	assert.Equal(t, "5", tree.Text(pairs[0].Value))
}

func TestLocalJavaParserAdapter_Calls(t *testing.T) {
	tree := parse(t, parserFixture)

	assertTrue := named(t, tree, m.KindCall, "assertTrue")
	require.NotEqual(t, m.NoNode, assertTrue.Receiver)
	assert.Equal(t, "Assert", tree.Text(assertTrue.Receiver))

	check := named(t, tree, m.KindCall, "check")
	assert.Equal(t, m.NoNode, check.Receiver)

	stmt, ok := tree.Node(check.Parent)
	require.True(t, ok)
	assert.Equal(t, m.KindStatement, stmt.Kind)
	assert.Equal(t, "check();", tree.Text(stmt.ID))

	method, ok := tree.Ancestor(check.ID, m.KindMethod)
	require.True(t, ok)
	assert.Equal(t, "run", method.Name)
}

func TestLocalJavaParserAdapter_SyntaxError(t *testing.T) {
	_, err := NewLocalJavaParserAdapter().Parse(context.Background(), "Broken.java", []byte("class A {\n    void x( {\n}\n"))
	require.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "Broken.java:")
}

func TestCompactAnnotation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@Test", "@Test"},
		{"@Test( timeout = 5 )", "@Test(timeout=5)"},
		{"@A(\n    x = 1,\ty = 2)", "@A(x=1,y=2)"},
		{`@Named("a b")`, `@Named("a b")`},
		{`@Named("say \"hi there\"")`, `@Named("say \"hi there\"")`},
		{`@C('\'' )`, `@C('\'')`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compactAnnotation(tt.in), tt.in)
	}
}
