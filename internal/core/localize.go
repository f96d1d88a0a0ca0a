package core

import (
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/models"
)

// LocalizeKeys rewrites attribute keys to their locale-qualified
// storage form for every field the type declares localized. Other keys
// are left untouched. This runs as the last step before any write-back
// so downstream collaborators never see bare keys for localized fields.
func LocalizeKeys(md meta.Metadata, typeName string, attrs models.Attributes) models.Attributes {
	localized := md.LocalizedFields(typeName)
	if len(localized) == 0 {
		return attrs
	}

	out := attrs.Clone()
	for _, name := range localized {
		value, ok := out[name]
		if !ok {
			continue
		}
		delete(out, name)
		out[name+meta.LocalizedSuffix] = value
	}
	return out
}
