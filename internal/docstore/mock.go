package docstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kilupskalvis/dochist/internal/models"
)

// MockStore is an in-memory implementation of Store for testing.
type MockStore struct {
	// Roots stores root attribute trees by "TypeName/ID" key
	Roots map[string]models.Attributes
	// Err can be set to make methods return an error
	Err error
	// Destroyed collects keys of destroyed root documents
	Destroyed []string
}

// NewMockStore creates a new MockStore for testing.
func NewMockStore() *MockStore {
	return &MockStore{Roots: make(map[string]models.Attributes)}
}

// AddRoot adds a root document to the mock store and returns it.
func (m *MockStore) AddRoot(typeName string, attrs models.Attributes) *Document {
	id := attrs.StringID()
	if id == "" {
		id = uuid.NewString()
		attrs[models.IDKey] = id
	}
	m.Roots[DocKey(typeName, id)] = attrs
	return &Document{Type: typeName, ID: id, Attributes: attrs}
}

// FindRoot looks up a root document by type and id.
func (m *MockStore) FindRoot(ctx context.Context, typeName, id string, unscoped bool) (*Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	attrs, ok := m.Roots[DocKey(typeName, id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, DocKey(typeName, id))
	}
	if !unscoped && attrs.Deleted() {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, DocKey(typeName, id))
	}
	return &Document{Type: typeName, ID: id, Attributes: attrs}, nil
}

// NewRoot creates a standalone root document.
func (m *MockStore) NewRoot(ctx context.Context, typeName string, attrs models.Attributes) (*Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.AddRoot(typeName, attrs.Clone()), nil
}

// CreateEmbeddedOne creates a singly embedded sub-document.
func (m *MockStore) CreateEmbeddedOne(ctx context.Context, parent *Document, name, typeName string, attrs models.Attributes) (*Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return attachEmbeddedOne(parent, name, typeName, attrs), nil
}

// AppendEmbeddedMany appends a sub-document to an embedded collection.
func (m *MockStore) AppendEmbeddedMany(ctx context.Context, parent *Document, name, typeName string, attrs models.Attributes) (*Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	child := appendEmbeddedMany(parent, name, typeName, attrs)
	if child.ID == "" {
		child.ID = uuid.NewString()
		child.Attributes[models.IDKey] = child.ID
	}
	return child, nil
}

// MutateAttributes writes attrs onto the document in place.
func (m *MockStore) MutateAttributes(ctx context.Context, doc *Document, attrs models.Attributes) error {
	if m.Err != nil {
		return fmt.Errorf("%w: %v", models.ErrMutationFailed, m.Err)
	}
	applyAttributes(doc, attrs)
	return nil
}

// Destroy deletes the document.
func (m *MockStore) Destroy(ctx context.Context, doc *Document) error {
	if m.Err != nil {
		return fmt.Errorf("%w: %v", models.ErrMutationFailed, m.Err)
	}
	if doc.parent == nil {
		key := DocKey(doc.Type, doc.ID)
		if _, ok := m.Roots[key]; !ok {
			return fmt.Errorf("%w: %s", models.ErrNotFound, key)
		}
		delete(m.Roots, key)
		m.Destroyed = append(m.Destroyed, key)
		return nil
	}
	return detachEmbedded(doc)
}

// Verify that *MockStore implements Store at compile time
var _ Store = (*MockStore)(nil)
