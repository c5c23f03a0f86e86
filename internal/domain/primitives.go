package domain

import m "ngshift.dev/pkg/ngshift/internal/model"

// Remove deletes target.
func Remove(target m.NodeID) m.Edit {
	return m.Edit{Kind: m.EditRemove, Target: target}
}

// Replace substitutes replacement for target.
func Replace(target m.NodeID, replacement m.Synthetic) m.Edit {
	return m.Edit{Kind: m.EditReplace, Target: target, Node: replacement}
}

// InsertIntoList adds node to the list of owner at pos.
func InsertIntoList(owner m.NodeID, list m.ListKind, node m.Synthetic, pos m.Position) m.Edit {
	return m.Edit{Kind: m.EditInsert, Owner: owner, List: list, Node: node, Position: pos}
}

// SetProperty fills the empty property of target with node.
func SetProperty(target m.NodeID, property m.Property, node m.Synthetic) m.Edit {
	return m.Edit{Kind: m.EditSet, Target: target, Property: property, Node: node}
}
