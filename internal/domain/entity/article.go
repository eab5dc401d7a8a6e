// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as Article,
// Subscriber and User, along with their validation rules and domain-specific
// errors.
package entity

import "time"

// Article represents a published or draft news article.
// The author is fixed at creation time; PublishedAt is set exactly once,
// at the moment Published transitions from false to true, and is never
// cleared or updated afterwards.
type Article struct {
	ID          int64
	AuthorID    int64
	Title       string
	Content     string
	Excerpt     string
	Category    string
	Tags        []string
	ImageURL    string
	Views       int64
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
