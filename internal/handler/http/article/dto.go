// Package article provides HTTP handlers for article endpoints: creating,
// listing, reading, updating and deleting articles, plus per-author
// statistics.
package article

import (
	"errors"
	"net/http"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"
	artUC "technews/internal/usecase/article"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64      `json:"id"`
	AuthorID    int64      `json:"author_id"`
	AuthorName  string     `json:"author_name,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	ImageURL    string     `json:"image_url,omitempty"`
	Views       int64      `json:"views"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		AuthorID:    a.AuthorID,
		Title:       a.Title,
		Content:     a.Content,
		Excerpt:     a.Excerpt,
		Category:    a.Category,
		Tags:        a.Tags,
		ImageURL:    a.ImageURL,
		Views:       a.Views,
		Published:   a.Published,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDTOWithAuthor(aw repository.ArticleWithAuthor) DTO {
	out := toDTO(aw.Article)
	out.AuthorName = aw.AuthorName
	return out
}

// statusForError maps usecase errors onto HTTP status codes.
func statusForError(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, artUC.ErrInvalidArticleID):
		return http.StatusBadRequest
	case errors.Is(err, artUC.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
