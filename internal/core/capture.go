package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilupskalvis/dochist/internal/models"
)

// Capture builds the change record for a document transition from
// before to after. The action is inferred from the snapshots: an empty
// before is a create, an empty after is a destroy, anything else an
// update. The record's version is assigned by the tracker store when
// saved.
func Capture(chain []models.AssociationStep, before, after models.Attributes, actor, scope string) (*models.ChangeRecord, error) {
	action := models.ActionUpdate
	switch {
	case len(before) == 0 && len(after) == 0:
		return nil, models.ErrMalformedRecord
	case len(before) == 0:
		action = models.ActionCreate
	case len(after) == 0:
		action = models.ActionDestroy
	}

	if scope == "" && len(chain) > 0 {
		scope = chain[0].Name
	}

	now := time.Now().UTC()
	record := &models.ChangeRecord{
		ID:         uuid.NewString(),
		Chain:      chain,
		Original:   before.Clone(),
		Modified:   after.Clone(),
		Action:     action,
		Scope:      scope,
		ModifierID: actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
