package article

import (
	"context"
	"fmt"
	"time"

	"technews/internal/common/pagination"
	"technews/internal/domain/entity"
	"technews/internal/repository"
	"technews/internal/usecase/notify"
)

// Notifier is invoked synchronously when an article transitions to
// published. The publish outcome never depends on the returned result.
type Notifier interface {
	ArticlePublished(ctx context.Context, article *entity.Article) notify.Result
}

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title     string
	Content   string
	Excerpt   string
	Category  string
	Tags      []string
	ImageURL  string
	Published bool
}

// UpdateInput represents the input parameters for updating an existing
// article. Nil fields are left unchanged; a non-nil pointer to an empty
// value (empty tag list, empty image URL) is still applied.
type UpdateInput struct {
	ID        int64
	Title     *string
	Content   *string
	Excerpt   *string
	Category  *string
	Tags      *[]string
	ImageURL  *string
	Published *bool
}

// PaginatedResult represents the result of a paginated listing query.
type PaginatedResult struct {
	Data       []repository.ArticleWithAuthor
	Pagination pagination.Metadata
}

// Service provides the article publish workflow. Persistence is delegated
// to the repository; newsletter fan-out to the Notifier.
type Service struct {
	Repo     repository.ArticleRepository
	Notifier Notifier // optional; nil disables fan-out
}

// Create creates a new article authored by the acting user.
// Title, content and category are required. If the article is created
// already published, PublishedAt is set to the creation time and the
// newsletter fan-out runs synchronously before Create returns; fan-out
// failures never affect the returned article or error.
func (s *Service) Create(ctx context.Context, actor entity.Identity, in CreateInput) (*entity.Article, error) {
	if !actor.CanAuthorArticles() {
		return nil, ErrForbidden
	}
	if err := entity.ValidateArticleFields(in.Title, in.Content, in.Category); err != nil {
		return nil, err
	}

	now := time.Now()
	art := &entity.Article{
		AuthorID:  actor.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Category:  in.Category,
		Tags:      in.Tags,
		ImageURL:  in.ImageURL,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Published {
		publishedAt := now
		art.PublishedAt = &publishedAt
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if art.Published && s.Notifier != nil {
		s.Notifier.ArticlePublished(ctx, art)
	}
	return art, nil
}

// Update modifies an existing article. Only non-nil fields are applied.
// The acting user must be the article's author or an admin.
//
// Publish-transition detection: when Published is explicitly provided as
// true and the stored record was unpublished, PublishedAt is set once and
// the fan-out runs synchronously. Setting Published=true on an already
// published article triggers no re-notification and leaves PublishedAt
// untouched.
func (s *Service) Update(ctx context.Context, actor entity.Identity, in UpdateInput) (*entity.Article, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if !actor.CanManageArticle(art.AuthorID) {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
		art.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, &entity.ValidationError{Field: "content", Message: "cannot be empty"}
		}
		art.Content = *in.Content
	}
	if in.Excerpt != nil {
		art.Excerpt = *in.Excerpt
	}
	if in.Category != nil {
		if *in.Category == "" {
			return nil, &entity.ValidationError{Field: "category", Message: "cannot be empty"}
		}
		art.Category = *in.Category
	}
	if in.Tags != nil {
		// An explicitly provided empty list clears the tags.
		art.Tags = *in.Tags
	}
	if in.ImageURL != nil {
		art.ImageURL = *in.ImageURL
	}

	publishTransition := false
	if in.Published != nil {
		if *in.Published && !art.Published {
			publishTransition = true
			publishedAt := time.Now()
			art.PublishedAt = &publishedAt
		}
		// PublishedAt is intentionally retained when unpublishing or
		// re-publishing: it records the first transition only.
		art.Published = *in.Published
	}

	art.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, art); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if publishTransition && s.Notifier != nil {
		s.Notifier.ArticlePublished(ctx, art)
	}
	return art, nil
}

// Delete removes an article. The acting user must be the article's author
// or an admin.
func (s *Service) Delete(ctx context.Context, actor entity.Identity, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}
	if !actor.CanManageArticle(art.AuthorID) {
		return ErrForbidden
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// Get retrieves a single article with its author, incrementing the view
// counter exactly once. The increment is atomic at the persistence layer,
// so concurrent reads never lose counts.
func (s *Service) Get(ctx context.Context, id int64) (*repository.ArticleWithAuthor, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	aws, err := s.Repo.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if aws == nil {
		return nil, ErrArticleNotFound
	}

	views, err := s.Repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	aws.Article.Views = views

	return aws, nil
}

// List retrieves articles matching the filter with pagination metadata.
func (s *Service) List(ctx context.Context, filter repository.ArticleFilter, params pagination.Params) (*PaginatedResult, error) {
	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	articles, err := s.Repo.ListWithAuthor(ctx, filter, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return &PaginatedResult{
		Data: articles,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Stats returns per-author article and view aggregates. Admin only.
func (s *Service) Stats(ctx context.Context, actor entity.Identity) ([]repository.AuthorStats, error) {
	if !actor.CanViewStats() {
		return nil, ErrForbidden
	}

	stats, err := s.Repo.StatsByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("author stats: %w", err)
	}
	return stats, nil
}
