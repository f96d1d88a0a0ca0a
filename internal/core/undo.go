package core

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/dochist/internal/docstore"
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/models"
)

// Undo reverses the record's change against the live document tree:
// a destroyed document is re-created, a created document is destroyed
// again, and an update has its previous attribute values restored.
// The actor identity is written to the modifier field on mutations.
func (t *Tracker) Undo(ctx context.Context, actor string) error {
	switch t.record.Action {
	case models.ActionDestroy:
		return t.recreate(ctx)
	case models.ActionCreate:
		return t.redestroy(ctx)
	default:
		return t.mutate(ctx, t.UndoAttributes(actor))
	}
}

// Redo reapplies the record's change: a created document is re-created,
// a destroyed document is destroyed again, and an update has its new
// attribute values applied.
func (t *Tracker) Redo(ctx context.Context, actor string) error {
	switch t.record.Action {
	case models.ActionCreate:
		return t.recreate(ctx)
	case models.ActionDestroy:
		return t.redestroy(ctx)
	default:
		return t.mutate(ctx, t.RedoAttributes(actor))
	}
}

// UndoAttributes computes the attribute mutation that reverts an
// update: added fields are removed first, previous values overlaid,
// the modifier field set, and any field introduced by the change with
// no prior value explicitly cleared.
func (t *Tracker) UndoAttributes(actor string) models.Attributes {
	attrs := t.AffectedValues().Without(t.record.Modified)
	attrs = attrs.Merge(t.record.Original)
	t.setModifier(attrs, actor)
	for key := range t.record.Modified {
		if _, ok := attrs[key]; !ok {
			attrs[key] = nil
		}
	}
	return attrs
}

// RedoAttributes computes the attribute mutation that reapplies an
// update: previous values are removed and the new values overlaid.
func (t *Tracker) RedoAttributes(actor string) models.Attributes {
	attrs := t.AffectedValues().Without(t.record.Original)
	attrs = attrs.Merge(t.record.Modified)
	t.setModifier(attrs, actor)
	return attrs
}

// setModifier writes the acting identity to the target type's
// configured modifier field.
func (t *Tracker) setModifier(attrs models.Attributes, actor string) {
	if actor == "" {
		return
	}
	attrs[t.meta.ModifierField(t.TargetType())] = actor
}

// mutate applies an attribute mutation to the resolved target document
// with keys localized for the chain's root type.
func (t *Tracker) mutate(ctx context.Context, attrs models.Attributes) error {
	target, err := t.target(ctx)
	if err != nil {
		return err
	}
	return t.store.MutateAttributes(ctx, target, LocalizeKeys(t.meta, t.record.RootType(), attrs))
}

// recreate rebuilds the document from its affected snapshot (the
// original for an undone destroy, the modified for a redone create):
// embedded under its resolved parent when the chain has more than one
// step, otherwise as a standalone root with its recorded id.
func (t *Tracker) recreate(ctx context.Context) error {
	chain := t.record.Chain
	attrs := LocalizeKeys(t.meta, t.record.RootType(), t.AffectedValues())

	if len(chain) == 1 {
		if attrs.StringID() == "" {
			return fmt.Errorf("%w: record snapshot has no %s", models.ErrMalformedRecord, models.IDKey)
		}
		_, err := t.store.NewRoot(ctx, t.record.RootType(), attrs)
		return err
	}

	parentPath, err := ResolvePath(ctx, t.store, t.meta, chain[:len(chain)-1])
	if err != nil {
		return err
	}
	parent := parentPath[len(parentPath)-1]
	step := chain[len(chain)-1]

	switch {
	case t.meta.IsEmbedsOne(parent.Type, step.Name):
		_, err = t.store.CreateEmbeddedOne(ctx, parent, step.Name, t.meta.EmbeddedType(parent.Type, step.Name), attrs)
	case t.meta.IsEmbedsMany(parent.Type, step.Name):
		_, err = t.store.AppendEmbeddedMany(ctx, parent, step.Name, t.meta.EmbeddedType(parent.Type, step.Name), attrs)
	default:
		err = fmt.Errorf("%w: %s.%s is neither embeds-one nor embeds-many",
			models.ErrModelingContract, parent.Type, step.Name)
	}
	return err
}

// redestroy resolves the target document and deletes it.
func (t *Tracker) redestroy(ctx context.Context) error {
	target, err := t.target(ctx)
	if err != nil {
		return err
	}
	return t.store.Destroy(ctx, target)
}

// UndoAll undoes a span of records in reverse order.
func UndoAll(ctx context.Context, st docstore.Store, md meta.Metadata, records []*models.ChangeRecord, actor string) error {
	for i := len(records) - 1; i >= 0; i-- {
		tracker, err := NewTracker(records[i], md, st)
		if err != nil {
			return err
		}
		if err := tracker.Undo(ctx, actor); err != nil {
			return fmt.Errorf("undo record %s: %w", records[i].ShortID(), err)
		}
	}
	return nil
}

// RedoAll reapplies a span of records in order.
func RedoAll(ctx context.Context, st docstore.Store, md meta.Metadata, records []*models.ChangeRecord, actor string) error {
	for _, record := range records {
		tracker, err := NewTracker(record, md, st)
		if err != nil {
			return err
		}
		if err := tracker.Redo(ctx, actor); err != nil {
			return fmt.Errorf("redo record %s: %w", record.ShortID(), err)
		}
	}
	return nil
}
