// Package article implements the publish workflow: article creation,
// field-by-field updates with publish-transition detection, deletion,
// public reads with view counting, filtered listing, and the per-author
// statistics aggregation.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrForbidden indicates that the acting user is neither the article's
	// author nor an admin, or lacks the capability for the operation.
	ErrForbidden = errors.New("forbidden: not allowed to perform this operation")
)
