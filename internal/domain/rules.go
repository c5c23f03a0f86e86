package domain

import (
	"strings"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// rewrite is the state shared by the rules while building one script.
type rewrite struct {
	tree     *m.Tree
	c        m.Classification
	profile  m.Profile
	builder  *scriptBuilder
	resolver *conflictResolver
}

type rewriteRule struct {
	name  string
	apply func(*rewrite) error
}

// rewriteRules run in this order. Imports and annotations are inserted at the
// head of their lists, so the order below fixes the order of the output:
// changing it changes the converted text.
var rewriteRules = []rewriteRule{
	{"prune-imports", pruneImports},
	{"add-imports", addImports},
	{"add-static-imports", addStaticImports},
	{"remove-base-type", removeBaseType},
	{"attach-annotations", attachAnnotations},
	{"remove-suite", removeSuite},
	{"remove-extra-nodes", removeExtraNodes},
	{"rewrite-assertions", rewriteAssertions},
	{"rewrite-fails", rewriteFails},
	{"rename-attributes", renameAttributes},
	{"remove-super-call", removeSuperCall},
}

func pruneImports(rw *rewrite) error {
	root, _ := rw.tree.Node(rw.tree.Root())

	for _, id := range root.List(m.ListImports).Items {
		imp, ok := rw.tree.Node(id)
		if !ok {
			continue
		}

		if obsoleteImport(imp.Name, rw.c) {
			rw.builder.add(Remove(id))
		}
	}

	return nil
}

func obsoleteImport(name string, c m.Classification) bool {
	for _, o := range c.ObsoleteImports {
		if name == o {
			return true
		}
	}

	for _, marker := range c.ObsoleteStaticImportMarkers {
		if marker != "" && strings.Contains(name, marker) {
			return true
		}
	}

	return false
}

func addImports(rw *rewrite) error {
	wanted := []struct {
		cond bool
		name string
	}{
		{rw.c.UsesAssertCalls, rw.profile.AssertionHelper},
		{rw.c.UsesFailCall, rw.profile.FailHelper},
		{len(rw.c.BeforeMethods) > 0, rw.profile.BeforeAnnotation},
		{rw.c.HasTests(), rw.profile.TestAnnotation},
		{len(rw.c.AfterMethods) > 0, rw.profile.AfterAnnotation},
	}

	for _, w := range wanted {
		if w.cond {
			rw.insertImport(w.name, false)
		}
	}

	return nil
}

func addStaticImports(rw *rewrite) error {
	for _, name := range rw.c.StaticallyImportedAssertionNames {
		rw.insertImport(rw.profile.AssertionHelper+"."+name, true)
	}

	return nil
}

func (rw *rewrite) insertImport(name string, static bool) {
	rw.builder.add(InsertIntoList(rw.tree.Root(), m.ListImports, newImport(name, static), m.Head))
}

func removeBaseType(rw *rewrite) error {
	if rw.c.LegacyBaseTypeReference != m.NoNode {
		rw.builder.add(Remove(rw.c.LegacyBaseTypeReference))
	}

	return nil
}

func attachAnnotations(rw *rewrite) error {
	testName := m.SimpleName(rw.profile.TestAnnotation)
	disabled := m.Attribute{Key: rw.profile.DisabledKey, Value: m.BoolLiteral(false)}

	roles := []struct {
		methods    []m.NodeID
		annotation func() *m.AnnotationNode
		remove     string
	}{
		{rw.c.TestMethods, func() *m.AnnotationNode { return Synthesize(testName) }, ""},
		{rw.c.DisabledTestMethods, func() *m.AnnotationNode { return Synthesize(testName, disabled) }, ""},
		{rw.c.BeforeMethods, func() *m.AnnotationNode {
			return Synthesize(m.SimpleName(rw.profile.BeforeAnnotation))
		}, rw.profile.LegacyBeforeAnnotation},
		{rw.c.AfterMethods, func() *m.AnnotationNode {
			return Synthesize(m.SimpleName(rw.profile.AfterAnnotation))
		}, rw.profile.LegacyAfterAnnotation},
	}

	for _, role := range roles {
		for _, method := range role.methods {
			edits, err := rw.resolver.attach(method, role.annotation(), role.remove)
			if err != nil {
				return err
			}

			rw.builder.add(edits...)
		}
	}

	return nil
}

func removeSuite(rw *rewrite) error {
	if rw.c.LegacySuiteMethod != m.NoNode {
		rw.builder.add(Remove(rw.c.LegacySuiteMethod))
	}

	return nil
}

func removeExtraNodes(rw *rewrite) error {
	for _, id := range rw.c.ExtraNodesToRemove {
		rw.builder.add(Remove(id))
	}

	return nil
}

func rewriteAssertions(rw *rewrite) error {
	helper := m.SimpleName(rw.profile.AssertionHelper)

	for _, id := range rw.c.AssertionCalls {
		call, _ := rw.tree.Node(id)
		if rw.c.StaticallyImported(call.Name) {
			continue
		}

		if call.Receiver != m.NoNode {
			rw.builder.add(Replace(call.Receiver, newName(helper)))
		} else {
			rw.builder.add(SetProperty(id, m.PropertyReceiver, newName(helper)))
		}
	}

	return nil
}

func rewriteFails(rw *rewrite) error {
	helper := m.SimpleName(rw.profile.FailHelper)

	for _, id := range rw.c.FailCalls {
		rw.builder.add(SetProperty(id, m.PropertyReceiver, newName(helper)))
	}

	return nil
}

func renameAttributes(rw *rewrite) error {
	for _, r := range rw.c.ExpectedOrTimeoutAttributes {
		pair, _ := rw.tree.Node(r.Pair)
		rw.builder.add(Replace(pair.Key, newName(r.NewName)))
	}

	return nil
}

func removeSuperCall(rw *rewrite) error {
	if rw.c.SuperConstructorCall != m.NoNode {
		rw.builder.add(Remove(rw.c.SuperConstructorCall))
	}

	return nil
}
