// Package docstore provides access to the live document tree the
// engine resolves against and writes back to. Documents are schemaless
// attribute maps; embedded sub-documents live inside their root
// document's attributes, either as a single map (embeds-one) or as a
// collection of id-keyed maps (embeds-many).
package docstore

import (
	"fmt"

	"github.com/kilupskalvis/dochist/internal/models"
)

// Document is one live document: a root loaded from the store, or an
// embedded sub-document viewing into its root's attribute tree.
// Embedded documents share the underlying maps with their root, so
// attribute edits are visible on the root for persisting.
type Document struct {
	Type       string
	ID         string
	Attributes models.Attributes

	parent *Document
	assoc  string // association name under parent
}

// DocKey returns the unique key for a document
func DocKey(typeName, id string) string {
	return typeName + "/" + id
}

// Root walks up the parent links to the root document.
func (d *Document) Root() *Document {
	doc := d
	for doc.parent != nil {
		doc = doc.parent
	}
	return doc
}

// Parent returns the embedding parent, or nil for a root document.
func (d *Document) Parent() *Document {
	return d.parent
}

// EmbeddedOne returns the single sub-document embedded under name.
func (d *Document) EmbeddedOne(name, typeName string) (*Document, error) {
	attrs, ok := asAttributes(d.Attributes[name])
	if !ok {
		return nil, fmt.Errorf("%w: %s has no embedded %s", models.ErrNotFound, DocKey(d.Type, d.ID), name)
	}
	return &Document{
		Type:       typeName,
		ID:         attrs.StringID(),
		Attributes: attrs,
		parent:     d,
		assoc:      name,
	}, nil
}

// EmbeddedMany returns the element of the embedded collection under
// name whose id matches. Unless unscoped, soft-deleted elements are
// skipped.
func (d *Document) EmbeddedMany(name, id, typeName string, unscoped bool) (*Document, error) {
	for _, item := range models.SequenceElements(d.Attributes[name]) {
		attrs, ok := asAttributes(item)
		if !ok || attrs.StringID() != id {
			continue
		}
		if !unscoped && attrs.Deleted() {
			continue
		}
		return &Document{
			Type:       typeName,
			ID:         id,
			Attributes: attrs,
			parent:     d,
			assoc:      name,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s has no %s with id %s", models.ErrNotFound, DocKey(d.Type, d.ID), name, id)
}

// asAttributes coerces an embedded value into an attribute map.
func asAttributes(v any) (models.Attributes, bool) {
	switch typed := v.(type) {
	case models.Attributes:
		return typed, true
	case map[string]any:
		return models.Attributes(typed), true
	}
	return nil, false
}

// applyAttributes writes attrs onto the document in place. A nil value
// clears the field.
func applyAttributes(doc *Document, attrs models.Attributes) {
	if doc.Attributes == nil {
		doc.Attributes = make(models.Attributes, len(attrs))
	}
	for k, v := range attrs {
		if v == nil {
			delete(doc.Attributes, k)
			continue
		}
		doc.Attributes[k] = v
	}
}

// detachEmbedded removes an embedded document from its parent's
// attribute tree. Roots cannot be detached.
func detachEmbedded(doc *Document) error {
	parent := doc.parent
	if parent == nil {
		return fmt.Errorf("document %s is not embedded", DocKey(doc.Type, doc.ID))
	}

	value := parent.Attributes[doc.assoc]
	if _, ok := asAttributes(value); ok {
		delete(parent.Attributes, doc.assoc)
		return nil
	}

	items := models.SequenceElements(value)
	kept := make([]any, 0, len(items))
	for _, item := range items {
		if attrs, ok := asAttributes(item); ok && attrs.StringID() == doc.ID {
			continue
		}
		kept = append(kept, item)
	}
	parent.Attributes[doc.assoc] = kept
	return nil
}

// attachEmbeddedOne stores attrs as the single sub-document embedded
// under name and returns the new document.
func attachEmbeddedOne(parent *Document, name, typeName string, attrs models.Attributes) *Document {
	stored := attrs.Clone()
	parent.Attributes[name] = map[string]any(stored)
	return &Document{
		Type:       typeName,
		ID:         stored.StringID(),
		Attributes: stored,
		parent:     parent,
		assoc:      name,
	}
}

// appendEmbeddedMany appends attrs to the embedded collection under
// name and returns the new element.
func appendEmbeddedMany(parent *Document, name, typeName string, attrs models.Attributes) *Document {
	stored := attrs.Clone()
	items := models.SequenceElements(parent.Attributes[name])
	parent.Attributes[name] = append(items, map[string]any(stored))
	return &Document{
		Type:       typeName,
		ID:         stored.StringID(),
		Attributes: stored,
		parent:     parent,
		assoc:      name,
	}
}
