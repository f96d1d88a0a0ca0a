package core

import (
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/models"
)

// ArrayDelta is the set difference of an array-valued field in each
// direction.
type ArrayDelta struct {
	Added   []any
	Removed []any
}

// RecordPair is one embedded record before and after a modification.
type RecordPair struct {
	From models.Attributes
	To   models.Attributes
}

// EmbeddedDelta classifies the elements of an embedded collection:
// records with new ids, records whose ids disappeared, and records
// whose id survived with changed content.
type EmbeddedDelta struct {
	Added    []models.Attributes
	Removed  []models.Attributes
	Modified []RecordPair
}

// Empty reports whether the delta carries no changes.
func (d EmbeddedDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// EditSummary buckets a change set into human-readable edits.
// Every field appears in exactly one bucket.
type EditSummary struct {
	Added    map[string]any
	Removed  map[string]any
	Modified map[string]ValueChange
	Arrays   map[string]ArrayDelta
	Embedded map[string]EmbeddedDelta
}

// Empty reports whether the summary carries no edits.
func (e *EditSummary) Empty() bool {
	return len(e.Added) == 0 && len(e.Removed) == 0 && len(e.Modified) == 0 &&
		len(e.Arrays) == 0 && len(e.Embedded) == 0
}

// ClassifyEdits classifies a change set of the named document type.
func ClassifyEdits(md meta.Metadata, typeName string, cs ChangeSet) *EditSummary {
	summary := &EditSummary{
		Added:    make(map[string]any),
		Removed:  make(map[string]any),
		Modified: make(map[string]ValueChange),
		Arrays:   make(map[string]ArrayDelta),
		Embedded: make(map[string]EmbeddedDelta),
	}

	for key, change := range cs {
		if change.FromBlank() && change.ToBlank() {
			continue
		}

		switch {
		case md.IsEmbedsMany(typeName, key):
			delta := embeddedDelta(change.From, change.To)
			if !delta.Empty() {
				summary.Embedded[key] = delta
			}
		case change.FromBlank():
			summary.Added[key] = change.To
		case change.ToBlank():
			summary.Removed[key] = change.From
		case models.IsSequence(change.From) && models.IsSequence(change.To):
			summary.Arrays[key] = arrayDelta(change.From, change.To)
		default:
			summary.Modified[key] = change
		}
	}

	return summary
}

// arrayDelta computes the set difference between two sequences in each
// direction, by element equality.
func arrayDelta(from, to any) ArrayDelta {
	fromItems := models.SequenceElements(from)
	toItems := models.SequenceElements(to)

	return ArrayDelta{
		Added:   sequenceDifference(toItems, fromItems),
		Removed: sequenceDifference(fromItems, toItems),
	}
}

// sequenceDifference returns the elements of items absent from other,
// each at most once, in first-seen order.
func sequenceDifference(items, other []any) []any {
	otherSet := make(map[string]struct{}, len(other))
	for _, item := range other {
		otherSet[string(models.CanonicalJSON(item))] = struct{}{}
	}

	var out []any
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := string(models.CanonicalJSON(item))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, exists := otherSet[key]; !exists {
			out = append(out, item)
		}
	}
	return out
}

// embeddedDelta diffs two embedded collections. Records present on
// both sides under the same id but with different content become
// modify pairs; records consumed by a pairing are excluded from the
// add/remove buckets so they are never double-counted.
func embeddedDelta(from, to any) EmbeddedDelta {
	fromRecords := collectionRecords(from)
	toRecords := collectionRecords(to)

	toByID := make(map[string]models.Attributes, len(toRecords))
	for _, record := range toRecords {
		if id, ok := recordID(record); ok {
			toByID[id] = record
		}
	}

	var delta EmbeddedDelta
	ignored := make(map[string]struct{})
	for _, record := range fromRecords {
		id, ok := recordID(record)
		if !ok {
			continue
		}
		match, matched := toByID[id]
		if !matched {
			continue
		}
		if models.ValuesEqual(record, match) {
			continue
		}
		delta.Modified = append(delta.Modified, RecordPair{From: record, To: match})
		ignored[string(models.CanonicalJSON(record))] = struct{}{}
		ignored[string(models.CanonicalJSON(match))] = struct{}{}
	}

	fromSet := recordSet(fromRecords)
	toSet := recordSet(toRecords)

	for _, record := range fromRecords {
		key := string(models.CanonicalJSON(record))
		if _, skip := ignored[key]; skip {
			continue
		}
		if _, exists := toSet[key]; exists {
			continue
		}
		delta.Removed = append(delta.Removed, record)
	}

	for _, record := range toRecords {
		key := string(models.CanonicalJSON(record))
		if _, skip := ignored[key]; skip {
			continue
		}
		if _, exists := fromSet[key]; exists {
			continue
		}
		delta.Added = append(delta.Added, record)
	}

	return delta
}

// collectionRecords coerces an embedded collection value into a list
// of attribute maps, defaulting a missing side to empty.
func collectionRecords(v any) []models.Attributes {
	items := models.SequenceElements(v)
	out := make([]models.Attributes, 0, len(items))
	for _, item := range items {
		switch typed := item.(type) {
		case models.Attributes:
			out = append(out, typed)
		case map[string]any:
			out = append(out, models.Attributes(typed))
		}
	}
	return out
}

// recordID returns the canonical form of a record's internal id.
func recordID(record models.Attributes) (string, bool) {
	id, ok := record[models.IDKey]
	if !ok || id == nil {
		return "", false
	}
	return string(models.CanonicalJSON(id)), true
}

// recordSet indexes records by their canonical encoding.
func recordSet(records []models.Attributes) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, record := range records {
		set[string(models.CanonicalJSON(record))] = struct{}{}
	}
	return set
}
