package models

import "errors"

// Failure categories surfaced by the engine. All are propagated
// synchronously to the caller; the engine never retries or logs.
var (
	// ErrModelingContract indicates a chain step names an association
	// that is neither embeds-one nor embeds-many: the declared schema
	// and the stored chain disagree.
	ErrModelingContract = errors.New("modeling contract violation")

	// ErrNotFound indicates a chain step resolved to no document.
	ErrNotFound = errors.New("document not found")

	// ErrMalformedRecord indicates a change record missing the chain or
	// snapshot data its declared action requires.
	ErrMalformedRecord = errors.New("malformed change record")

	// ErrMutationFailed indicates the document store rejected a write.
	ErrMutationFailed = errors.New("mutation failed")
)
