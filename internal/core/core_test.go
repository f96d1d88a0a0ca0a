package core

import (
	"github.com/kilupskalvis/dochist/internal/meta"
)

// newTestMeta builds the registry used across core tests: articles with
// an embedded author and embedded comments, and localized pages.
func newTestMeta() *meta.Registry {
	registry := meta.NewRegistry()
	registry.Register(meta.TypeInfo{
		Name:    "Article",
		Tracked: []string{"title", "body", "tags", "rating", "name"},
		Associations: map[string]meta.Association{
			"author":   {Kind: meta.EmbedsOne, Type: "Author"},
			"comments": {Kind: meta.EmbedsMany, Type: "Comment"},
		},
	})
	registry.Register(meta.TypeInfo{
		Name:     "Comment",
		TrackAll: true,
		Untracked: []string{
			"internal_notes",
		},
	})
	registry.Register(meta.TypeInfo{
		Name:    "Author",
		Tracked: []string{"name", "email"},
	})
	registry.Register(meta.TypeInfo{
		Name:          "Page",
		Tracked:       []string{"title", "body"},
		Localized:     []string{"title"},
		ModifierField: "updated_by",
	})
	return registry
}
