package domain

import (
	"log/slog"
	"strings"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// conflictResolver composes the removal of a legacy annotation with the
// insertion of its replacement on the same declaration.
type conflictResolver struct {
	tree *m.Tree
	// implicitMarker is removed alongside any named removal target, e.g.
	// "@Override" on a setUp method that no longer overrides anything.
	implicitMarker string
	strict         bool
	logger         *slog.Logger
}

// attach returns the edits that put annotation at the head of the modifier
// list of owner. When removeTarget is set, the first modifier entry rendered
// as removeTarget or as the implicit marker is removed in the same unit.
func (r *conflictResolver) attach(owner m.NodeID, annotation *m.AnnotationNode, removeTarget string) ([]m.Edit, error) {
	edits := make([]m.Edit, 0, 2)

	if removeTarget != "" {
		candidates := r.candidates(owner, removeTarget)

		if len(candidates) > 1 {
			ambiguity := &AmbiguityError{Owner: owner, Target: removeTarget, Candidates: candidates}
			if r.strict {
				return nil, ambiguity
			}

			kept := make([]string, 0, len(candidates)-1)
			for _, id := range candidates[1:] {
				kept = append(kept, r.tree.Text(id))
			}

			r.logger.Warn("removing first matching annotation",
				"error", ambiguity,
				"owner", owner,
				"removed", r.tree.Text(candidates[0]),
				"kept", strings.Join(kept, " "),
			)
		}

		if len(candidates) > 0 {
			edits = append(edits, Remove(candidates[0]))
		}
	}

	edits = append(edits, InsertIntoList(owner, m.ListModifiers, annotation, m.Head))

	return edits, nil
}

// candidates lists the annotation entries of owner matching target or the
// implicit marker, in encountered order.
func (r *conflictResolver) candidates(owner m.NodeID, target string) []m.NodeID {
	decl, ok := r.tree.Node(owner)
	if !ok {
		return nil
	}

	var found []m.NodeID

	for _, id := range decl.List(m.ListModifiers).Items {
		mod, ok := r.tree.Node(id)
		if !ok || mod.Kind != m.KindAnnotation {
			continue
		}

		if mod.Name == target || (r.implicitMarker != "" && mod.Name == r.implicitMarker) {
			found = append(found, id)
		}
	}

	return found
}
