package domain

import (
	"log/slog"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// scriptBuilder accumulates the edits emitted by the rules and validates them
// into an EditScript.
type scriptBuilder struct {
	tree   *m.Tree
	edits  []m.Edit
	units  int
	logger *slog.Logger
}

func newScriptBuilder(tree *m.Tree, logger *slog.Logger) *scriptBuilder {
	return &scriptBuilder{tree: tree, logger: logger}
}

// add appends edits as one unit. Edits of the same unit may touch the same
// declaration without being reported as overlapping.
func (b *scriptBuilder) add(edits ...m.Edit) {
	if len(edits) == 0 {
		return
	}

	b.units++
	for _, e := range edits {
		e.Unit = b.units
		b.edits = append(b.edits, e)
	}
}

// build validates the accumulated edits and returns the finished script.
func (b *scriptBuilder) build() (m.EditScript, error) {
	edits := b.dedupeRemovals()

	for i := range edits {
		for j := range edits {
			if i == j || edits[i].Unit == edits[j].Unit {
				continue
			}

			if b.overlaps(edits[i], edits[j]) {
				first, second := edits[i], edits[j]
				if j < i {
					first, second = second, first
				}

				return m.EditScript{}, &OverlapError{First: first, Second: second}
			}
		}
	}

	return m.NewEditScript(b.tree.Path(), edits), nil
}

// dedupeRemovals drops repeated removals of the same node; they describe the
// same change.
func (b *scriptBuilder) dedupeRemovals() []m.Edit {
	removed := make(map[m.NodeID]bool)
	edits := make([]m.Edit, 0, len(b.edits))

	for _, e := range b.edits {
		if e.Kind == m.EditRemove {
			if removed[e.Target] {
				b.logger.Debug("dropping duplicate removal", "node", e.Target)
				continue
			}

			removed[e.Target] = true
		}

		edits = append(edits, e)
	}

	return edits
}

// overlaps reports whether destructive edit a covers the node edit o is
// attached to, or whether both set the same property.
func (b *scriptBuilder) overlaps(a, o m.Edit) bool {
	if a.Kind == m.EditSet && o.Kind == m.EditSet {
		return a.Target == o.Target && a.Property == o.Property
	}

	if a.Kind != m.EditRemove && a.Kind != m.EditReplace {
		return false
	}

	outer, ok := b.tree.Node(a.Target)
	if !ok {
		return false
	}

	inner, ok := b.tree.Node(o.Anchor())
	if !ok {
		return false
	}

	return outer.Range.Contains(inner.Range)
}
