package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/dochist/internal/docstore"
	"github.com/kilupskalvis/dochist/internal/models"
)

func newTracker(t *testing.T, st *docstore.MockStore, record *models.ChangeRecord) *Tracker {
	t.Helper()
	tracker, err := NewTracker(record, newTestMeta(), st)
	require.NoError(t, err)
	return tracker
}

func TestUndoAttributes_ClearsNewlyAddedFields(t *testing.T) {
	st := docstore.NewMockStore()
	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"title": "old"},
		Modified: models.Attributes{"title": "new", "body": "added"},
	})

	attrs := tracker.UndoAttributes("user-1")

	assert.Equal(t, "old", attrs["title"])
	value, present := attrs["body"]
	assert.True(t, present)
	assert.Nil(t, value)
	assert.Equal(t, "user-1", attrs["modified_by"])
}

func TestRedoAttributes(t *testing.T) {
	st := docstore.NewMockStore()
	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"title": "old", "rating": 3},
		Modified: models.Attributes{"title": "new"},
	})

	attrs := tracker.RedoAttributes("user-1")

	assert.Equal(t, "new", attrs["title"])
	assert.NotContains(t, attrs, "rating")
	assert.Equal(t, "user-1", attrs["modified_by"])
}

func TestUndo_Update(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	doc := st.AddRoot("Article", models.Attributes{
		"_id": "a1", "title": "new", "body": "added",
	})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"title": "old"},
		Modified: models.Attributes{"title": "new", "body": "added"},
	})

	require.NoError(t, tracker.Undo(ctx, "user-1"))

	assert.Equal(t, "old", doc.Attributes["title"])
	assert.NotContains(t, doc.Attributes, "body")
	assert.Equal(t, "user-1", doc.Attributes["modified_by"])
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	doc := st.AddRoot("Article", models.Attributes{
		"_id": "a1", "title": "new", "body": "added",
	})

	record := &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"title": "old", "rating": 3},
		Modified: models.Attributes{"title": "new", "body": "added"},
	}

	tracker := newTracker(t, st, record)
	require.NoError(t, tracker.Undo(ctx, "u"))
	assert.Equal(t, "old", doc.Attributes["title"])
	assert.Equal(t, 3, doc.Attributes["rating"])
	assert.NotContains(t, doc.Attributes, "body")

	tracker = newTracker(t, st, record)
	require.NoError(t, tracker.Redo(ctx, "u"))
	assert.Equal(t, "new", doc.Attributes["title"])
	assert.Equal(t, "added", doc.Attributes["body"])
}

func TestUndo_DestroyRecreatesRoot(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "7"}},
		Action:   models.ActionDestroy,
		Original: models.Attributes{"_id": "7", "name": "Bob"},
	})

	require.NoError(t, tracker.Undo(ctx, ""))

	restored, ok := st.Roots[docstore.DocKey("Article", "7")]
	require.True(t, ok)
	assert.Equal(t, "7", restored.StringID())
	assert.Equal(t, "Bob", restored["name"])
}

func TestUndo_DestroyRecreatesEmbedded(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	doc := st.AddRoot("Article", models.Attributes{
		"_id":      "a1",
		"comments": []any{map[string]any{"_id": "c1", "text": "kept"}},
	})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain: []models.AssociationStep{
			{Name: "Article", ID: "a1"},
			{Name: "comments", ID: "c2"},
		},
		Action:   models.ActionDestroy,
		Original: models.Attributes{"_id": "c2", "text": "restored"},
	})

	require.NoError(t, tracker.Undo(ctx, ""))

	comments := models.SequenceElements(doc.Attributes["comments"])
	require.Len(t, comments, 2)

	restored, err := doc.EmbeddedMany("comments", "c2", "Comment", true)
	require.NoError(t, err)
	assert.Equal(t, "restored", restored.Attributes["text"])
}

func TestUndo_DestroyRecreatesEmbeddedOne(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	doc := st.AddRoot("Article", models.Attributes{"_id": "a1"})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain: []models.AssociationStep{
			{Name: "Article", ID: "a1"},
			{Name: "author"},
		},
		Action:   models.ActionDestroy,
		Original: models.Attributes{"_id": "au1", "name": "Ann"},
	})

	require.NoError(t, tracker.Undo(ctx, ""))

	author, err := doc.EmbeddedOne("author", "Author")
	require.NoError(t, err)
	assert.Equal(t, "Ann", author.Attributes["name"])
}

func TestUndo_CreateDestroysTarget(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	st.AddRoot("Article", models.Attributes{"_id": "a1", "title": "Hello"})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionCreate,
		Modified: models.Attributes{"_id": "a1", "title": "Hello"},
	})

	require.NoError(t, tracker.Undo(ctx, ""))

	assert.NotContains(t, st.Roots, docstore.DocKey("Article", "a1"))
	assert.Equal(t, []string{"Article/a1"}, st.Destroyed)
}

func TestRedo_CreateRecreatesFromModified(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionCreate,
		Modified: models.Attributes{"_id": "a1", "title": "Hello"},
	})

	require.NoError(t, tracker.Redo(ctx, ""))

	restored, ok := st.Roots[docstore.DocKey("Article", "a1")]
	require.True(t, ok)
	assert.Equal(t, "Hello", restored["title"])
}

func TestRedo_DestroyDestroysTarget(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	st.AddRoot("Article", models.Attributes{"_id": "a1", "title": "Hello"})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionDestroy,
		Original: models.Attributes{"_id": "a1", "title": "Hello"},
	})

	require.NoError(t, tracker.Redo(ctx, ""))
	assert.NotContains(t, st.Roots, docstore.DocKey("Article", "a1"))
}

func TestUndo_UpdateEmbeddedComment(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	doc := st.AddRoot("Article", models.Attributes{
		"_id": "a1",
		"comments": []any{
			map[string]any{"_id": "c1", "text": "edited"},
		},
	})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain: []models.AssociationStep{
			{Name: "Article", ID: "a1"},
			{Name: "comments", ID: "c1"},
		},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"text": "first"},
		Modified: models.Attributes{"text": "edited"},
	})

	require.NoError(t, tracker.Undo(ctx, ""))

	comment, err := doc.EmbeddedMany("comments", "c1", "Comment", true)
	require.NoError(t, err)
	assert.Equal(t, "first", comment.Attributes["text"])
}

func TestUndo_LocalizedKeysRewritten(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	doc := st.AddRoot("Page", models.Attributes{
		"_id":                "p1",
		"title_translations": map[string]any{"en": "New"},
	})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Page", ID: "p1"}},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"title": map[string]any{"en": "Old"}},
		Modified: models.Attributes{"title": map[string]any{"en": "New"}},
	})

	require.NoError(t, tracker.Undo(ctx, "editor"))

	assert.NotContains(t, doc.Attributes, "title")
	assert.Equal(t, map[string]any{"en": "Old"}, doc.Attributes["title_translations"])
	assert.Equal(t, "editor", doc.Attributes["updated_by"])
}

func TestUndo_MutationFailurePropagates(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	st.AddRoot("Article", models.Attributes{"_id": "a1", "title": "new"})

	tracker := newTracker(t, st, &models.ChangeRecord{
		Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action:   models.ActionUpdate,
		Original: models.Attributes{"title": "old"},
		Modified: models.Attributes{"title": "new"},
	})
	// Resolve succeeds, the write fails
	path, err := tracker.Path(ctx)
	require.NoError(t, err)
	require.Len(t, path, 1)
	st.Err = assert.AnError

	err = tracker.Undo(ctx, "")
	assert.ErrorIs(t, err, models.ErrMutationFailed)
}

func TestNewTracker_MalformedRecords(t *testing.T) {
	st := docstore.NewMockStore()
	md := newTestMeta()

	_, err := NewTracker(&models.ChangeRecord{Action: models.ActionUpdate}, md, st)
	assert.ErrorIs(t, err, models.ErrMalformedRecord)

	_, err = NewTracker(&models.ChangeRecord{
		Chain:  []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action: models.ActionDestroy,
	}, md, st)
	assert.ErrorIs(t, err, models.ErrMalformedRecord)

	_, err = NewTracker(&models.ChangeRecord{
		Chain:  []models.AssociationStep{{Name: "Article", ID: "a1"}},
		Action: models.ActionCreate,
	}, md, st)
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestUndoAll_ReversesSpanInOrder(t *testing.T) {
	ctx := context.Background()
	st := docstore.NewMockStore()
	md := newTestMeta()
	doc := st.AddRoot("Article", models.Attributes{"_id": "a1", "title": "third"})

	records := []*models.ChangeRecord{
		{
			Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
			Action:   models.ActionUpdate,
			Original: models.Attributes{"title": "first"},
			Modified: models.Attributes{"title": "second"},
		},
		{
			Chain:    []models.AssociationStep{{Name: "Article", ID: "a1"}},
			Action:   models.ActionUpdate,
			Original: models.Attributes{"title": "second"},
			Modified: models.Attributes{"title": "third"},
		},
	}

	require.NoError(t, UndoAll(ctx, st, md, records, "u"))
	assert.Equal(t, "first", doc.Attributes["title"])

	require.NoError(t, RedoAll(ctx, st, md, records, "u"))
	assert.Equal(t, "third", doc.Attributes["title"])
}
