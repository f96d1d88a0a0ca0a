package core

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/dochist/internal/docstore"
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/models"
)

// ResolvePath walks an association chain from its root to the changed
// document. Lookups bypass default scoping so soft-deleted documents
// resolve too. The returned sequence starts at the root aggregate and
// ends at the target; its second-to-last element is the parent used
// for structural recreation.
func ResolvePath(ctx context.Context, st docstore.Store, md meta.Metadata, chain []models.AssociationStep) ([]*docstore.Document, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: empty association chain", models.ErrMalformedRecord)
	}

	root, err := st.FindRoot(ctx, chain[0].Name, chain[0].ID, true)
	if err != nil {
		return nil, err
	}

	path := make([]*docstore.Document, 0, len(chain))
	path = append(path, root)

	doc := root
	for _, step := range chain[1:] {
		var child *docstore.Document
		switch {
		case md.IsEmbedsOne(doc.Type, step.Name):
			child, err = doc.EmbeddedOne(step.Name, md.EmbeddedType(doc.Type, step.Name))
		case md.IsEmbedsMany(doc.Type, step.Name):
			child, err = doc.EmbeddedMany(step.Name, step.ID, md.EmbeddedType(doc.Type, step.Name), true)
		default:
			return nil, fmt.Errorf("%w: %s.%s is neither embeds-one nor embeds-many",
				models.ErrModelingContract, doc.Type, step.Name)
		}
		if err != nil {
			return nil, err
		}
		path = append(path, child)
		doc = child
	}

	return path, nil
}
