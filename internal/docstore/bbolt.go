package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/kilupskalvis/dochist/internal/models"
)

// BoltStore is a bbolt-backed Store: one bucket per document type,
// keyed by id, values are the root document's attribute tree as JSON.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates a bbolt document database at the given path.
func OpenBolt(dbPath string) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// FindRoot looks up a root document by type and id.
func (s *BoltStore) FindRoot(ctx context.Context, typeName, id string, unscoped bool) (*Document, error) {
	var attrs models.Attributes
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(typeName))
		if b == nil {
			return fmt.Errorf("%w: %s", models.ErrNotFound, DocKey(typeName, id))
		}
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", models.ErrNotFound, DocKey(typeName, id))
		}
		if err := json.Unmarshal(data, &attrs); err != nil {
			return fmt.Errorf("unmarshal document %s: %w", DocKey(typeName, id), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !unscoped && attrs.Deleted() {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, DocKey(typeName, id))
	}

	return &Document{Type: typeName, ID: id, Attributes: attrs}, nil
}

// NewRoot creates and persists a standalone root document.
func (s *BoltStore) NewRoot(ctx context.Context, typeName string, attrs models.Attributes) (*Document, error) {
	stored := attrs.Clone()
	id := stored.StringID()
	if id == "" {
		id = uuid.NewString()
		stored[models.IDKey] = id
	}

	doc := &Document{Type: typeName, ID: id, Attributes: stored}
	if err := s.saveRoot(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateEmbeddedOne creates a singly embedded sub-document.
func (s *BoltStore) CreateEmbeddedOne(ctx context.Context, parent *Document, name, typeName string, attrs models.Attributes) (*Document, error) {
	child := attachEmbeddedOne(parent, name, typeName, attrs)
	if err := s.saveRoot(parent); err != nil {
		return nil, err
	}
	return child, nil
}

// AppendEmbeddedMany appends a sub-document to an embedded collection.
func (s *BoltStore) AppendEmbeddedMany(ctx context.Context, parent *Document, name, typeName string, attrs models.Attributes) (*Document, error) {
	child := appendEmbeddedMany(parent, name, typeName, attrs)
	if child.ID == "" {
		child.ID = uuid.NewString()
		child.Attributes[models.IDKey] = child.ID
	}
	if err := s.saveRoot(parent); err != nil {
		return nil, err
	}
	return child, nil
}

// MutateAttributes writes attrs onto the document and persists its root.
func (s *BoltStore) MutateAttributes(ctx context.Context, doc *Document, attrs models.Attributes) error {
	applyAttributes(doc, attrs)
	return s.saveRoot(doc)
}

// Destroy deletes the document.
func (s *BoltStore) Destroy(ctx context.Context, doc *Document) error {
	if doc.parent == nil {
		return s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(doc.Type))
			if b == nil {
				return fmt.Errorf("%w: %s", models.ErrNotFound, DocKey(doc.Type, doc.ID))
			}
			return b.Delete([]byte(doc.ID))
		})
	}

	if err := detachEmbedded(doc); err != nil {
		return err
	}
	return s.saveRoot(doc.Root())
}

// saveRoot persists the attribute tree of the document's root.
func (s *BoltStore) saveRoot(doc *Document) error {
	root := doc.Root()
	data, err := json.Marshal(root.Attributes)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", DocKey(root.Type, root.ID), err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(root.Type))
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", root.Type, err)
		}
		return b.Put([]byte(root.ID), data)
	})
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", models.ErrMutationFailed, DocKey(root.Type, root.ID), err)
	}
	return nil
}

// Verify that *BoltStore implements Store at compile time
var _ Store = (*BoltStore)(nil)
