package domain

import (
	"fmt"
	"log/slog"
	"strings"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// Classifier extracts the facts the Engine needs from a parsed file.
type Classifier interface {
	Classify(tree *m.Tree) (m.Classification, error)
}

type classifier struct {
	profile m.Profile
	logger  *slog.Logger
}

// NewClassifier creates a Classifier recognizing the legacy names of profile.
func NewClassifier(profile m.Profile, logger *slog.Logger) Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &classifier{profile: profile, logger: logger}
}

// classification is the working state of one Classify call.
type classification struct {
	m.Classification

	tree    *m.Tree
	profile m.Profile
	logger  *slog.Logger

	legacyFile     bool
	legacyClass    m.NodeID
	staticOnDemand bool
	declared       map[string]bool
	seen           map[m.NodeID]bool

	// members and extending describe the other classes of the file, for
	// calls that reach the legacy class through nesting.
	members   map[m.NodeID]map[string]bool
	extending map[m.NodeID]bool
}

// Classify implements Classifier. Every list in the result is in source order.
func (c *classifier) Classify(tree *m.Tree) (m.Classification, error) {
	if tree == nil || !tree.Has(tree.Root()) {
		return m.Classification{}, fmt.Errorf("%w: empty tree", ErrInvalidReference)
	}

	cl := &classification{
		Classification: m.Classification{
			ObsoleteImports:             append([]string(nil), c.profile.ObsoleteImports...),
			ObsoleteStaticImportMarkers: append([]string(nil), c.profile.ObsoleteStaticImportMarkers...),
		},
		tree:     tree,
		profile:  c.profile,
		logger:   c.logger.With("path", tree.Path()),
		declared:  make(map[string]bool),
		seen:      make(map[m.NodeID]bool),
		members:   make(map[m.NodeID]map[string]bool),
		extending: make(map[m.NodeID]bool),
	}

	cl.imports()
	cl.baseType()

	if !cl.legacyFile {
		cl.logger.Debug("no legacy test framework usage found")
		return cl.Classification, nil
	}

	tree.Walk(func(n m.Node) bool {
		switch n.Kind {
		case m.KindMethod:
			cl.member(n)
			cl.method(n)
		case m.KindTypeRef:
			cl.extending[n.Parent] = true
		}

		return true
	})

	tree.Walk(func(n m.Node) bool {
		switch n.Kind {
		case m.KindCall:
			cl.call(n)
		case m.KindSuperCall:
			cl.superCall(n)
		}

		return true
	})

	return cl.Classification, nil
}

func (cl *classification) imports() {
	root, _ := cl.tree.Node(cl.tree.Root())

	for _, id := range root.List(m.ListImports).Items {
		imp, ok := cl.tree.Node(id)
		if !ok {
			continue
		}

		if !cl.legacyPackage(imp.Name) {
			continue
		}

		cl.legacyFile = true

		if imp.Static {
			owner, member := splitMember(imp.Name)
			if !containsString(cl.profile.LegacyAssertionTypes, owner) {
				continue
			}

			cl.obsolete(imp.Name)

			if member == "*" {
				cl.staticOnDemand = true
			}

			if !cl.StaticallyImported(member) {
				cl.StaticallyImportedAssertionNames = append(cl.StaticallyImportedAssertionNames, member)
			}

			continue
		}

		if imp.OnDemand {
			cl.obsolete(imp.Name)
		}
	}
}

func (cl *classification) obsolete(name string) {
	if !containsString(cl.ObsoleteImports, name) {
		cl.ObsoleteImports = append(cl.ObsoleteImports, name)
	}
}

func (cl *classification) legacyPackage(name string) bool {
	for _, pkg := range cl.profile.LegacyPackages {
		if strings.HasPrefix(name, pkg+".") {
			return true
		}
	}

	return false
}

func (cl *classification) baseType() {
	cl.LegacyBaseTypeReference = m.NoNode

	cl.tree.Walk(func(n m.Node) bool {
		if n.Kind != m.KindTypeRef || !containsString(cl.profile.LegacyBaseTypes, n.Type) {
			return true
		}

		cl.LegacyBaseTypeReference = n.ID
		cl.legacyClass = n.Parent
		cl.legacyFile = true

		return false
	})
}

func (cl *classification) method(n m.Node) {
	inLegacyClass := cl.legacyClass != m.NoNode && n.Parent == cl.legacyClass
	if inLegacyClass {
		cl.declared[n.Name] = true
	}

	var test, ignore m.Node

	for _, id := range n.List(m.ListModifiers).Items {
		mod, ok := cl.tree.Node(id)
		if !ok || mod.Kind != m.KindAnnotation {
			continue
		}

		switch {
		case mod.Name == cl.profile.LegacyBeforeAnnotation:
			cl.BeforeMethods = cl.appendMethod(cl.BeforeMethods, n.ID)
		case mod.Name == cl.profile.LegacyAfterAnnotation:
			cl.AfterMethods = cl.appendMethod(cl.AfterMethods, n.ID)
		case cl.isAnnotation(mod, cl.profile.LegacyTestAnnotation):
			test = mod
		case cl.isAnnotation(mod, cl.profile.LegacyIgnoreAnnotation):
			ignore = mod
		}
	}

	switch {
	case test.ID != m.NoNode && ignore.ID != m.NoNode && !strings.Contains(test.Name, "("):
		cl.DisabledTestMethods = cl.appendMethod(cl.DisabledTestMethods, n.ID)
		cl.ExtraNodesToRemove = append(cl.ExtraNodesToRemove, test.ID, ignore.ID)

		return
	case test.ID != m.NoNode:
		cl.UsesTestAnnotation = true
		cl.renames(test.ID)

		if ignore.ID != m.NoNode {
			cl.logger.Warn("cannot disable test with attributes, dropping ignore annotation",
				"method", n.Name,
				"annotation", test.Name,
			)
			cl.ExtraNodesToRemove = append(cl.ExtraNodesToRemove, ignore.ID)
		}

		return
	case ignore.ID != m.NoNode:
		cl.logger.Warn("dropping ignore annotation on a non-test method", "method", n.Name)
		cl.ExtraNodesToRemove = append(cl.ExtraNodesToRemove, ignore.ID)
	}

	if !inLegacyClass {
		return
	}

	switch {
	case n.Name == cl.profile.LegacySetUpMethod && n.Arity == 0:
		cl.BeforeMethods = cl.appendMethod(cl.BeforeMethods, n.ID)
	case n.Name == cl.profile.LegacyTearDownMethod && n.Arity == 0:
		cl.AfterMethods = cl.appendMethod(cl.AfterMethods, n.ID)
	case n.Name == cl.profile.LegacySuiteMethod && n.Arity == 0 && cl.hasModifier(n, "static"):
		if cl.LegacySuiteMethod == m.NoNode {
			cl.LegacySuiteMethod = n.ID
		}
	case cl.profile.LegacyTestMethodPrefix != "" &&
		strings.HasPrefix(n.Name, cl.profile.LegacyTestMethodPrefix) &&
		n.Arity == 0 && n.Type == "void" && cl.hasModifier(n, "public"):
		cl.TestMethods = cl.appendMethod(cl.TestMethods, n.ID)
	}
}

// isAnnotation matches an annotation by its simple or qualified type name,
// so both "@Test(timeout=5)" and "@org.junit.Test" match "@Test".
func (cl *classification) isAnnotation(ann m.Node, legacy string) bool {
	if legacy == "" {
		return false
	}

	return "@"+m.SimpleName(ann.Type) == legacy
}

func (cl *classification) hasModifier(n m.Node, keyword string) bool {
	for _, id := range n.List(m.ListModifiers).Items {
		if mod, ok := cl.tree.Node(id); ok && mod.Kind == m.KindModifier && mod.Name == keyword {
			return true
		}
	}

	return false
}

func (cl *classification) appendMethod(ids []m.NodeID, id m.NodeID) []m.NodeID {
	if cl.seen[id] {
		return ids
	}

	cl.seen[id] = true

	return append(ids, id)
}

func (cl *classification) renames(annotation m.NodeID) {
	cl.tree.Walk(func(n m.Node) bool {
		if n.Kind != m.KindPair || n.Parent != annotation {
			return true
		}

		if newName, ok := cl.profile.AttributeRenames[n.Name]; ok && newName != n.Name {
			cl.ExpectedOrTimeoutAttributes = append(cl.ExpectedOrTimeoutAttributes, m.AttributeRename{
				Pair:    n.ID,
				NewName: newName,
			})
		}

		return true
	})
}

func (cl *classification) call(n m.Node) {
	if method, ok := cl.tree.Ancestor(n.ID, m.KindMethod); ok && method.ID == cl.LegacySuiteMethod {
		return
	}

	if cl.superLifecycleCall(n) {
		return
	}

	assertion := hasAnyPrefix(n.Name, cl.profile.AssertionMethodPrefixes)
	fail := n.Name == cl.profile.FailMethod

	if !assertion && !fail {
		return
	}

	if n.Receiver != m.NoNode {
		if cl.legacyReceiver(n) {
			cl.AssertionCalls = append(cl.AssertionCalls, n.ID)
			cl.UsesAssertCalls = true
		}

		return
	}

	if cl.staticOnDemand || cl.StaticallyImported(n.Name) || cl.declared[n.Name] {
		return
	}

	if !cl.inheritsFromLegacyClass(n) {
		return
	}

	if fail {
		cl.FailCalls = append(cl.FailCalls, n.ID)
		cl.UsesFailCall = true

		return
	}

	cl.AssertionCalls = append(cl.AssertionCalls, n.ID)
	cl.UsesAssertCalls = true
}

// superLifecycleCall records "super.setUp();" and "super.tearDown();"
// statements for removal.
func (cl *classification) superLifecycleCall(n m.Node) bool {
	if n.Receiver == m.NoNode || (n.Name != cl.profile.LegacySetUpMethod && n.Name != cl.profile.LegacyTearDownMethod) {
		return false
	}

	receiver, _ := cl.tree.Node(n.Receiver)
	if receiver.Name != "super" || !cl.insideLegacyClass(n.ID) {
		return false
	}

	stmt, ok := cl.tree.Node(n.Parent)
	if !ok || stmt.Kind != m.KindStatement || stmt.Range.Start != n.Range.Start {
		return false
	}

	cl.ExtraNodesToRemove = append(cl.ExtraNodesToRemove, stmt.ID)

	return true
}

func (cl *classification) superCall(n m.Node) {
	if cl.SuperConstructorCall != m.NoNode || !cl.insideLegacyClass(n.ID) {
		return
	}

	if _, ok := cl.tree.Ancestor(n.ID, m.KindConstructor); ok {
		cl.SuperConstructorCall = n.ID
	}
}

// legacyReceiver reports whether the receiver of call n names the legacy
// assertion helper: one of its type names, or this/super of the legacy class
// when the class does not declare the method itself.
func (cl *classification) legacyReceiver(n m.Node) bool {
	receiver, _ := cl.tree.Node(n.Receiver)

	switch receiver.Name {
	case "this", "super":
		return !cl.declared[n.Name] && cl.insideLegacyClass(n.ID)
	}

	return containsString(cl.profile.LegacyAssertionTypes, receiver.Name)
}

func (cl *classification) member(n m.Node) {
	names, ok := cl.members[n.Parent]
	if !ok {
		names = make(map[string]bool)
		cl.members[n.Parent] = names
	}

	names[n.Name] = true
}

// inheritsFromLegacyClass reports whether the unqualified call n resolves to
// a method inherited by the legacy class. Nested classes are searched
// outwards; one that declares the method or has its own superclass hides
// the legacy class.
func (cl *classification) inheritsFromLegacyClass(n m.Node) bool {
	if cl.legacyClass == m.NoNode {
		return false
	}

	id := n.ID

	for {
		class, ok := cl.tree.Ancestor(id, m.KindClass)
		if !ok {
			return false
		}

		if class.ID == cl.legacyClass {
			return true
		}

		if cl.extending[class.ID] || cl.members[class.ID][n.Name] {
			return false
		}

		id = class.ID
	}
}

// insideLegacyClass reports whether the closest enclosing class of id is the
// one extending the legacy base type.
func (cl *classification) insideLegacyClass(id m.NodeID) bool {
	class, ok := cl.tree.Ancestor(id, m.KindClass)

	return ok && cl.legacyClass != m.NoNode && class.ID == cl.legacyClass
}

func splitMember(name string) (string, string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
