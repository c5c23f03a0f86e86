// Package domain contains the rewrite engine, the classifier that feeds it and
// the conversion workflow.
package domain

import (
	"fmt"
	"log/slog"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// Engine turns a classified tree into the edits that convert it.
type Engine interface {
	Convert(tree *m.Tree, classification m.Classification) (m.EditScript, error)
}

// EngineOption configures an engine.
type EngineOption func(*engine)

// WithLogger sets the logger used for rule tracing and ambiguity warnings.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStrictAnnotationMatch makes an ambiguous annotation removal fail the
// conversion instead of removing the first match.
func WithStrictAnnotationMatch(strict bool) EngineOption {
	return func(e *engine) {
		e.strict = strict
	}
}

type engine struct {
	profile m.Profile
	strict  bool
	logger  *slog.Logger
}

// NewEngine creates an Engine writing the target names of profile.
func NewEngine(profile m.Profile, opts ...EngineOption) Engine {
	e := &engine{
		profile: profile,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Convert runs every rewrite rule in order and returns the validated script.
// A classification entry that does not resolve in tree aborts the conversion
// with ErrInvalidReference; no partial script is returned.
func (e *engine) Convert(tree *m.Tree, classification m.Classification) (m.EditScript, error) {
	if tree == nil {
		return m.EditScript{}, fmt.Errorf("%w: nil tree", ErrInvalidReference)
	}

	if err := validateReferences(tree, classification); err != nil {
		return m.EditScript{}, err
	}

	rw := &rewrite{
		tree:    tree,
		c:       classification,
		profile: e.profile,
		builder: newScriptBuilder(tree, e.logger),
		resolver: &conflictResolver{
			tree:           tree,
			implicitMarker: e.profile.ImplicitRemovalMarker,
			strict:         e.strict,
			logger:         e.logger,
		},
	}

	for _, rule := range rewriteRules {
		before := len(rw.builder.edits)

		if err := rule.apply(rw); err != nil {
			return m.EditScript{}, fmt.Errorf("%s: rule %s: %w", tree.Path(), rule.name, err)
		}

		if n := len(rw.builder.edits) - before; n > 0 {
			e.logger.Debug("rule applied", "path", tree.Path(), "rule", rule.name, "edits", n)
		}
	}

	script, err := rw.builder.build()
	if err != nil {
		return m.EditScript{}, fmt.Errorf("%s: %w", tree.Path(), err)
	}

	return script, nil
}

// validateReferences checks every node reference of c against tree.
func validateReferences(tree *m.Tree, c m.Classification) error {
	check := func(field string, id m.NodeID, kinds ...m.NodeKind) error {
		n, ok := tree.Node(id)
		if !ok {
			return &ReferenceError{Field: field, Node: id, Reason: "not in tree"}
		}

		if len(kinds) == 0 {
			if n.Kind == m.KindUnit {
				return &ReferenceError{Field: field, Node: id, Reason: "cannot target the compilation unit"}
			}

			return nil
		}

		for _, k := range kinds {
			if n.Kind == k {
				return nil
			}
		}

		return &ReferenceError{Field: field, Node: id, Reason: fmt.Sprintf("is a %s, want %v", n.Kind, kinds)}
	}

	lists := []struct {
		field string
		ids   []m.NodeID
		kinds []m.NodeKind
	}{
		{"BeforeMethods", c.BeforeMethods, []m.NodeKind{m.KindMethod}},
		{"AfterMethods", c.AfterMethods, []m.NodeKind{m.KindMethod}},
		{"TestMethods", c.TestMethods, []m.NodeKind{m.KindMethod}},
		{"DisabledTestMethods", c.DisabledTestMethods, []m.NodeKind{m.KindMethod}},
		{"AssertionCalls", c.AssertionCalls, []m.NodeKind{m.KindCall}},
		{"FailCalls", c.FailCalls, []m.NodeKind{m.KindCall}},
		{"ExtraNodesToRemove", c.ExtraNodesToRemove, nil},
	}

	for _, l := range lists {
		for _, id := range l.ids {
			if err := check(l.field, id, l.kinds...); err != nil {
				return err
			}
		}
	}

	optional := []struct {
		field string
		id    m.NodeID
		kinds []m.NodeKind
	}{
		{"LegacyBaseTypeReference", c.LegacyBaseTypeReference, []m.NodeKind{m.KindTypeRef}},
		{"LegacySuiteMethod", c.LegacySuiteMethod, []m.NodeKind{m.KindMethod}},
		{"SuperConstructorCall", c.SuperConstructorCall, []m.NodeKind{m.KindSuperCall, m.KindStatement}},
	}

	for _, o := range optional {
		if o.id == m.NoNode {
			continue
		}

		if err := check(o.field, o.id, o.kinds...); err != nil {
			return err
		}
	}

	for _, id := range c.FailCalls {
		if call, _ := tree.Node(id); call.Receiver != m.NoNode {
			return &ReferenceError{Field: "FailCalls", Node: id, Reason: "call already has a receiver"}
		}
	}

	for _, r := range c.ExpectedOrTimeoutAttributes {
		if err := check("ExpectedOrTimeoutAttributes", r.Pair, m.KindPair); err != nil {
			return err
		}

		if pair, _ := tree.Node(r.Pair); pair.Key == m.NoNode || !tree.Has(pair.Key) {
			return &ReferenceError{Field: "ExpectedOrTimeoutAttributes", Node: r.Pair, Reason: "pair has no name node"}
		}

		if r.NewName == "" {
			return &ReferenceError{Field: "ExpectedOrTimeoutAttributes", Node: r.Pair, Reason: "empty attribute name"}
		}
	}

	return nil
}
