// Package repository defines the persistence contracts consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"technews/internal/domain/entity"
)

// ArticleWithAuthor represents an article along with its author's display
// name and email, as returned by list and get queries.
type ArticleWithAuthor struct {
	Article     *entity.Article
	AuthorName  string
	AuthorEmail string
}

// ArticleFilter contains optional filters for article listing.
type ArticleFilter struct {
	Category  string // Optional: exact category match
	Published *bool  // Optional: filter by published flag
	Search    string // Optional: free-text search over title/content/category
}

// AuthorStats aggregates per-author article counts and view totals.
type AuthorStats struct {
	AuthorID          int64
	AuthorName        string
	AuthorEmail       string
	TotalArticles     int64
	PublishedArticles int64
	TotalViews        int64
}

type ArticleRepository interface {
	// Get retrieves an article by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetWithAuthor retrieves an article by ID joined with its author's
	// name and email. Returns (nil, nil) if not found.
	GetWithAuthor(ctx context.Context, id int64) (*ArticleWithAuthor, error)
	// ListWithAuthor retrieves articles matching the filter, newest first,
	// with LIMIT/OFFSET pagination.
	ListWithAuthor(ctx context.Context, filter ArticleFilter, offset, limit int) ([]ArticleWithAuthor, error)
	// Count returns the number of articles matching the filter.
	// Used for pagination metadata.
	Count(ctx context.Context, filter ArticleFilter) (int64, error)
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
	// IncrementViews atomically increments the view counter for the given
	// article and returns the new value. The increment happens in a single
	// UPDATE so concurrent reads never lose counts.
	IncrementViews(ctx context.Context, id int64) (int64, error)
	// StatsByAuthor aggregates article and view counts per author,
	// ordered by total views descending.
	StatsByAuthor(ctx context.Context) ([]AuthorStats, error)
}
