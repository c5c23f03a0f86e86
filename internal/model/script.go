package model

import "sort"

// EditScript is the ordered, immutable sequence of edits for one Tree.
type EditScript struct {
	path  Path
	edits []Edit
}

// NewEditScript wraps edits into a script. The slice is copied.
func NewEditScript(path Path, edits []Edit) EditScript {
	return EditScript{path: path, edits: append([]Edit(nil), edits...)}
}

// Path returns the file the script applies to.
func (s EditScript) Path() Path {
	return s.path
}

// Len returns the number of edits.
func (s EditScript) Len() int {
	return len(s.edits)
}

// Edits returns a copy of the edits in emission order.
func (s EditScript) Edits() []Edit {
	return append([]Edit(nil), s.edits...)
}

// Insertions returns the insertions into the given list in their final list
// order (see OrderInsertions).
func (s EditScript) Insertions(owner NodeID, list ListKind) []Edit {
	var inserts []Edit

	for _, e := range s.edits {
		if e.Kind == EditInsert && e.Owner == owner && e.List == list {
			inserts = append(inserts, e)
		}
	}

	return OrderInsertions(inserts)
}

// Removed reports whether the script removes id.
func (s EditScript) Removed(id NodeID) bool {
	for _, e := range s.edits {
		if e.Kind == EditRemove && e.Target == id {
			return true
		}
	}

	return false
}

// OrderInsertions returns the final relative order of insertions made into a
// single list, given in call order.
//
// Every insertion goes in front of whatever is already at its anchor, so for
// repeated head insertions the last call ends up first and the first call ends
// up last. Insertions at different anchor indexes keep the index order.
func OrderInsertions(calls []Edit) []Edit {
	type indexed struct {
		edit Edit
		seq  int
	}

	items := make([]indexed, len(calls))
	for i, e := range calls {
		items[i] = indexed{edit: e, seq: i}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ai, aj := items[i].edit.Position.anchor(), items[j].edit.Position.anchor()
		if ai != aj {
			return ai < aj
		}

		return items[i].seq > items[j].seq
	})

	ordered := make([]Edit, len(items))
	for i, it := range items {
		ordered[i] = it.edit
	}

	return ordered
}
