// Package meta describes the document types the engine operates on:
// which fields are tracked, how associations embed, and how localized
// fields are stored.
package meta

// DefaultModifierField is the attribute written with the acting
// identity on undo/redo when a type declares no modifier field.
const DefaultModifierField = "modified_by"

// LocalizedSuffix is appended to a localized field's name to form its
// storage key (a per-locale value map).
const LocalizedSuffix = "_translations"

// Metadata is the capability interface the engine depends on for
// per-type dispatch. Implementations describe the host document model;
// the engine never inspects documents beyond this contract.
type Metadata interface {
	// IsTracked reports whether changes to the named field of the named
	// type are recorded and classified.
	IsTracked(typeName, field string) bool

	// IsEmbedsOne reports whether the named association embeds a single
	// sub-document.
	IsEmbedsOne(typeName, name string) bool

	// IsEmbedsMany reports whether the named association embeds an
	// id-keyed collection of sub-documents.
	IsEmbedsMany(typeName, name string) bool

	// EmbeddedType returns the document type an association embeds, or
	// "" if the association is not declared.
	EmbeddedType(typeName, name string) string

	// LocalizedFields returns the field names the type stores in
	// locale-qualified form.
	LocalizedFields(typeName string) []string

	// ModifierField returns the attribute name receiving the acting
	// identity on undo/redo mutations.
	ModifierField(typeName string) string
}
