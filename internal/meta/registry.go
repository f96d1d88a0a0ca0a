package meta

// AssociationKind distinguishes how an association embeds its target.
type AssociationKind string

const (
	EmbedsOne  AssociationKind = "embeds_one"
	EmbedsMany AssociationKind = "embeds_many"
)

// Association declares one embedded association of a type.
type Association struct {
	Kind AssociationKind
	Type string
}

// TypeInfo declares one document type.
type TypeInfo struct {
	Name          string
	Tracked       []string // explicitly tracked fields
	TrackAll      bool     // track every field except Untracked
	Untracked     []string
	Localized     []string
	ModifierField string
	Associations  map[string]Association
}

// Registry is a declarative Metadata implementation: types are
// registered up front and looked up by name.
type Registry struct {
	types map[string]TypeInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]TypeInfo)}
}

// Register adds or replaces a type declaration.
func (r *Registry) Register(info TypeInfo) {
	if info.Associations == nil {
		info.Associations = make(map[string]Association)
	}
	r.types[info.Name] = info
}

// IsTracked reports whether the field is tracked for the type.
// Unregistered types track nothing.
func (r *Registry) IsTracked(typeName, field string) bool {
	info, ok := r.types[typeName]
	if !ok {
		return false
	}
	if info.TrackAll {
		for _, name := range info.Untracked {
			if name == field {
				return false
			}
		}
		return true
	}
	for _, name := range info.Tracked {
		if name == field {
			return true
		}
	}
	// Embedded associations are tracked as fields of their parent
	_, isAssoc := info.Associations[field]
	return isAssoc
}

// IsEmbedsOne reports whether the association embeds a single document.
func (r *Registry) IsEmbedsOne(typeName, name string) bool {
	assoc, ok := r.types[typeName].Associations[name]
	return ok && assoc.Kind == EmbedsOne
}

// IsEmbedsMany reports whether the association embeds a collection.
func (r *Registry) IsEmbedsMany(typeName, name string) bool {
	assoc, ok := r.types[typeName].Associations[name]
	return ok && assoc.Kind == EmbedsMany
}

// EmbeddedType returns the declared target type of an association.
func (r *Registry) EmbeddedType(typeName, name string) string {
	return r.types[typeName].Associations[name].Type
}

// LocalizedFields returns the type's locale-qualified field names.
func (r *Registry) LocalizedFields(typeName string) []string {
	return r.types[typeName].Localized
}

// ModifierField returns the type's modifier attribute name.
func (r *Registry) ModifierField(typeName string) string {
	if field := r.types[typeName].ModifierField; field != "" {
		return field
	}
	return DefaultModifierField
}

// Verify that *Registry implements Metadata at compile time
var _ Metadata = (*Registry)(nil)
