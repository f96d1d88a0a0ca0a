package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/dochist/internal/docstore"
	"github.com/kilupskalvis/dochist/internal/models"
)

func newTestArticle(st *docstore.MockStore) *docstore.Document {
	return st.AddRoot("Article", models.Attributes{
		"_id":   "a1",
		"title": "Hello",
		"author": map[string]any{
			"_id":  "au1",
			"name": "Ann",
		},
		"comments": []any{
			map[string]any{"_id": "c1", "text": "first"},
			map[string]any{"_id": "c2", "text": "second"},
		},
	})
}

func TestResolvePath_Root(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	newTestArticle(st)

	path, err := ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "a1"},
	})
	require.NoError(t, err)

	require.Len(t, path, 1)
	assert.Equal(t, "Article", path[0].Type)
	assert.Equal(t, "a1", path[0].ID)
}

func TestResolvePath_EmbedsOne(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	newTestArticle(st)

	path, err := ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "a1"},
		{Name: "author"},
	})
	require.NoError(t, err)

	require.Len(t, path, 2)
	assert.Equal(t, "Author", path[1].Type)
	assert.Equal(t, "au1", path[1].ID)
	assert.Equal(t, "Ann", path[1].Attributes["name"])
}

func TestResolvePath_EmbedsMany(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	newTestArticle(st)

	path, err := ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "a1"},
		{Name: "comments", ID: "c2"},
	})
	require.NoError(t, err)

	require.Len(t, path, 2)
	assert.Equal(t, "Comment", path[1].Type)
	assert.Equal(t, "second", path[1].Attributes["text"])
	assert.Equal(t, "Article", path[1].Root().Type)
}

func TestResolvePath_SoftDeletedDocumentsResolve(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	st.AddRoot("Article", models.Attributes{
		"_id":      "gone",
		"_deleted": true,
		"comments": []any{
			map[string]any{"_id": "c9", "_deleted": true, "text": "hidden"},
		},
	})

	path, err := ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "gone"},
		{Name: "comments", ID: "c9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hidden", path[1].Attributes["text"])
}

func TestResolvePath_UnknownAssociation(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	newTestArticle(st)

	_, err := ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "a1"},
		{Name: "publisher"},
	})
	assert.ErrorIs(t, err, models.ErrModelingContract)
}

func TestResolvePath_MissingDocument(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	newTestArticle(st)

	_, err := ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "nope"},
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = ResolvePath(ctx, st, md, []models.AssociationStep{
		{Name: "Article", ID: "a1"},
		{Name: "comments", ID: "c404"},
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolvePath_EmptyChain(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()

	_, err := ResolvePath(ctx, st, md, nil)
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}
