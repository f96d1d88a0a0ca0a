package core

import (
	"context"

	"github.com/kilupskalvis/dochist/internal/docstore"
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/models"
)

// Tracker is the processing context for one change record. Derived
// structures are computed at most once per instance and cached; the
// record itself is never mutated. A Tracker is not safe for concurrent
// use — callers process one record at a time.
type Tracker struct {
	record *models.ChangeRecord
	meta   meta.Metadata
	store  docstore.Store

	targetType   string
	targetTypeOK bool
	changeSet    ChangeSet
	edits        *EditSummary
	affected     models.Attributes
	path         []*docstore.Document
}

// NewTracker validates the record and wraps it for processing.
func NewTracker(record *models.ChangeRecord, md meta.Metadata, st docstore.Store) (*Tracker, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{record: record, meta: md, store: st}, nil
}

// Record returns the wrapped change record.
func (t *Tracker) Record() *models.ChangeRecord {
	return t.record
}

// TargetType walks the association chain through the type metadata to
// the changed document's type name.
func (t *Tracker) TargetType() string {
	if t.targetTypeOK {
		return t.targetType
	}
	typeName := t.record.RootType()
	for _, step := range t.record.Chain[1:] {
		typeName = t.meta.EmbeddedType(typeName, step.Name)
		if typeName == "" {
			break
		}
	}
	t.targetType = typeName
	t.targetTypeOK = true
	return typeName
}

// Changes returns the record's change set: tracked fields with their
// before and after values.
func (t *Tracker) Changes() ChangeSet {
	if t.changeSet == nil {
		t.changeSet = ComputeChangeSet(t.meta, t.TargetType(), t.record.Original, t.record.Modified)
	}
	return t.changeSet
}

// Edits returns the record's classified edit summary.
func (t *Tracker) Edits() *EditSummary {
	if t.edits == nil {
		t.edits = ClassifyEdits(t.meta, t.TargetType(), t.Changes())
	}
	return t.edits
}

// AffectedValues returns the single-value view of the change: the
// after values for create/update, the before values for destroy.
func (t *Tracker) AffectedValues() models.Attributes {
	if t.affected == nil {
		if t.record.Action == models.ActionDestroy {
			t.affected = t.record.Original.Clone()
		} else {
			t.affected = t.record.Modified.Clone()
		}
	}
	return t.affected
}

// Path resolves the record's association chain against the live
// document tree. The resolved path is cached on first success.
func (t *Tracker) Path(ctx context.Context) ([]*docstore.Document, error) {
	if t.path != nil {
		return t.path, nil
	}
	path, err := ResolvePath(ctx, t.store, t.meta, t.record.Chain)
	if err != nil {
		return nil, err
	}
	t.path = path
	return path, nil
}

// target resolves the changed document itself.
func (t *Tracker) target(ctx context.Context) (*docstore.Document, error) {
	path, err := t.Path(ctx)
	if err != nil {
		return nil, err
	}
	return path[len(path)-1], nil
}
