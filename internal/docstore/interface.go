package docstore

import (
	"context"

	"github.com/kilupskalvis/dochist/internal/models"
)

// Store defines the contract for document store operations.
// This interface enables mocking for testing the core package.
type Store interface {
	// FindRoot looks up a root document by type and id. With unscoped
	// set, soft-deleted documents are returned too.
	FindRoot(ctx context.Context, typeName, id string, unscoped bool) (*Document, error)

	// NewRoot creates and persists a standalone root document. An id
	// present in attrs is kept; otherwise one is generated.
	NewRoot(ctx context.Context, typeName string, attrs models.Attributes) (*Document, error)

	// CreateEmbeddedOne creates a sub-document embedded singly under
	// parent and persists the root.
	CreateEmbeddedOne(ctx context.Context, parent *Document, name, typeName string, attrs models.Attributes) (*Document, error)

	// AppendEmbeddedMany appends a sub-document to the embedded
	// collection under parent and persists the root.
	AppendEmbeddedMany(ctx context.Context, parent *Document, name, typeName string, attrs models.Attributes) (*Document, error)

	// MutateAttributes writes attrs onto the document and persists its
	// root. A nil attribute value clears the field. The write succeeds
	// or fails as a unit.
	MutateAttributes(ctx context.Context, doc *Document, attrs models.Attributes) error

	// Destroy deletes the document: a root is removed from the store,
	// an embedded document is removed from its parent's tree.
	Destroy(ctx context.Context, doc *Document) error
}
