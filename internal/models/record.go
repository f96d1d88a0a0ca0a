// Package models defines the core data structures used throughout DocHist
// including change records, association chains, and attribute maps.
package models

import (
	"fmt"
	"time"
)

// Action represents the kind of change a record captures
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
)

// AssociationStep is one step of an association chain. The first step
// names the root document type and id; subsequent steps name embedded
// associations, with an id for embeds-many collections.
type AssociationStep struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// ChangeRecord is one historical change event for a tracked document.
// It is created once when the change is captured and never mutated.
type ChangeRecord struct {
	ID         string            `json:"id"`
	Chain      []AssociationStep `json:"association_chain"`
	Original   Attributes        `json:"original,omitempty"`
	Modified   Attributes        `json:"modified,omitempty"`
	Action     Action            `json:"action"`
	Scope      string            `json:"scope,omitempty"`
	Version    int               `json:"version"`
	ModifierID string            `json:"modifier_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Root returns the first chain step (the root document type and id).
func (r *ChangeRecord) Root() AssociationStep {
	return r.Chain[0]
}

// RootType returns the document type name of the chain root.
func (r *ChangeRecord) RootType() string {
	if len(r.Chain) == 0 {
		return ""
	}
	return r.Chain[0].Name
}

// Target returns the last chain step (the changed document itself).
func (r *ChangeRecord) Target() AssociationStep {
	return r.Chain[len(r.Chain)-1]
}

// Validate checks the record's structural invariants: a non-empty chain
// and the snapshot the declared action depends on.
func (r *ChangeRecord) Validate() error {
	if len(r.Chain) == 0 {
		return fmt.Errorf("%w: empty association chain", ErrMalformedRecord)
	}
	for i, step := range r.Chain {
		if step.Name == "" {
			return fmt.Errorf("%w: chain step %d has no name", ErrMalformedRecord, i)
		}
	}
	switch r.Action {
	case ActionCreate:
		if len(r.Modified) == 0 {
			return fmt.Errorf("%w: create record has empty modified snapshot", ErrMalformedRecord)
		}
	case ActionDestroy:
		if len(r.Original) == 0 {
			return fmt.Errorf("%w: destroy record has empty original snapshot", ErrMalformedRecord)
		}
	case ActionUpdate:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrMalformedRecord, r.Action)
	}
	return nil
}

// ShortID returns a shortened record ID (first 8 characters)
func (r *ChangeRecord) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}
