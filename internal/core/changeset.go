// Package core implements the domain logic for DocHist including
// change classification, association chain resolution, and undo/redo
// reconstruction.
package core

import (
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/models"
)

// ValueChange holds the before and after value of one field. HasFrom
// and HasTo distinguish an absent side from a stored null.
type ValueChange struct {
	From    any
	To      any
	HasFrom bool
	HasTo   bool
}

// FromBlank reports whether the change has no usable before value.
func (v ValueChange) FromBlank() bool {
	return !v.HasFrom || models.IsBlank(v.From)
}

// ToBlank reports whether the change has no usable after value.
func (v ValueChange) ToBlank() bool {
	return !v.HasTo || models.IsBlank(v.To)
}

// ChangeSet maps field names to their before/after values, restricted
// to tracked fields. Entries blank on both sides are excluded.
type ChangeSet map[string]ValueChange

// ComputeChangeSet builds the change set for a transition of the named
// document type from original to modified.
func ComputeChangeSet(md meta.Metadata, typeName string, original, modified models.Attributes) ChangeSet {
	keys := make(map[string]struct{}, len(original)+len(modified))
	for k := range original {
		keys[k] = struct{}{}
	}
	for k := range modified {
		keys[k] = struct{}{}
	}

	cs := make(ChangeSet)
	for key := range keys {
		if !md.IsTracked(typeName, key) {
			continue
		}
		from, hasFrom := original[key]
		to, hasTo := modified[key]
		change := ValueChange{From: from, To: to, HasFrom: hasFrom, HasTo: hasTo}
		if change.FromBlank() && change.ToBlank() {
			continue
		}
		cs[key] = change
	}
	return cs
}
