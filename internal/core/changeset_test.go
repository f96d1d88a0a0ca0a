package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilupskalvis/dochist/internal/models"
)

func TestComputeChangeSet_TrackedFieldsOnly(t *testing.T) {
	md := newTestMeta()

	cs := ComputeChangeSet(md, "Article",
		models.Attributes{"title": "old", "secret": "a"},
		models.Attributes{"title": "new", "secret": "b"})

	assert.Len(t, cs, 1)
	change, ok := cs["title"]
	assert.True(t, ok)
	assert.Equal(t, "old", change.From)
	assert.Equal(t, "new", change.To)
	assert.True(t, change.HasFrom)
	assert.True(t, change.HasTo)
}

func TestComputeChangeSet_AbsentSides(t *testing.T) {
	md := newTestMeta()

	cs := ComputeChangeSet(md, "Article",
		models.Attributes{"title": "old"},
		models.Attributes{"body": "added"})

	assert.Len(t, cs, 2)
	assert.True(t, cs["title"].HasFrom)
	assert.False(t, cs["title"].HasTo)
	assert.False(t, cs["body"].HasFrom)
	assert.True(t, cs["body"].HasTo)
}

func TestComputeChangeSet_BothBlankExcluded(t *testing.T) {
	md := newTestMeta()

	cs := ComputeChangeSet(md, "Article",
		models.Attributes{"title": "", "tags": []any{}},
		models.Attributes{"title": nil, "body": "x"})

	// No entry may be blank on both sides
	for key, change := range cs {
		assert.False(t, change.FromBlank() && change.ToBlank(), "field %s is blank on both sides", key)
	}
	assert.NotContains(t, cs, "title")
	assert.NotContains(t, cs, "tags")
	assert.Contains(t, cs, "body")
}

func TestComputeChangeSet_Idempotent(t *testing.T) {
	md := newTestMeta()
	original := models.Attributes{"title": "old", "tags": []any{"x", "y"}}
	modified := models.Attributes{"title": "new", "tags": []any{"y", "z"}}

	first := ComputeChangeSet(md, "Article", original, modified)
	second := ComputeChangeSet(md, "Article", original, modified)

	assert.Equal(t, first, second)
}

func TestComputeChangeSet_UnknownTypeTracksNothing(t *testing.T) {
	md := newTestMeta()

	cs := ComputeChangeSet(md, "Widget",
		models.Attributes{"title": "old"},
		models.Attributes{"title": "new"})

	assert.Empty(t, cs)
}
