package models

// IDKey is the attribute key holding a document's id, both on roots and
// on records inside embedded collections.
const IDKey = "_id"

// DeletedKey marks a document as soft-deleted. Default-scoped lookups
// skip documents carrying it; the path resolver does not.
const DeletedKey = "_deleted"

// Attributes is an open-ended field-name to value mapping, as decoded
// from JSON. Key absence means "no value"; a stored nil is JSON null.
type Attributes map[string]any

// Clone returns a shallow copy of the attribute map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge overlays every key of other onto a copy of a.
func (a Attributes) Merge(other Attributes) Attributes {
	out := a.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Without returns a copy of a with every key present in other removed.
func (a Attributes) Without(other Attributes) Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		if _, drop := other[k]; drop {
			continue
		}
		out[k] = v
	}
	return out
}

// StringID returns the document id stored under IDKey, if any.
func (a Attributes) StringID() string {
	id, _ := a[IDKey].(string)
	return id
}

// Deleted reports whether the attribute map carries the soft-delete marker.
func (a Attributes) Deleted() bool {
	deleted, _ := a[DeletedKey].(bool)
	return deleted
}
