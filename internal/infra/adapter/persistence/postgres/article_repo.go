package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"technews/internal/domain/entity"
	"technews/internal/repository"
	"technews/internal/resilience/circuitbreaker"

	"github.com/lib/pq"
)

type ArticleRepo struct {
	db           circuitbreaker.Querier
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db circuitbreaker.Querier) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

const articleColumns = `id, author_id, title, content, excerpt, category, tags, image_url, views, published, published_at, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }, article *entity.Article) error {
	return row.Scan(&article.ID, &article.AuthorID, &article.Title, &article.Content,
		&article.Excerpt, &article.Category, pq.Array(&article.Tags), &article.ImageURL,
		&article.Views, &article.Published, &article.PublishedAt,
		&article.CreatedAt, &article.UpdatedAt)
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err := scanArticle(repo.db.QueryRowContext(ctx, query, id), &article)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) GetWithAuthor(ctx context.Context, id int64) (*repository.ArticleWithAuthor, error) {
	const query = `
SELECT a.id, a.author_id, a.title, a.content, a.excerpt, a.category, a.tags, a.image_url,
       a.views, a.published, a.published_at, a.created_at, a.updated_at,
       u.name AS author_name, u.email AS author_email
FROM articles a
INNER JOIN users u ON a.author_id = u.id
WHERE a.id = $1
LIMIT 1`
	var article entity.Article
	var authorName, authorEmail string
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&article.ID, &article.AuthorID, &article.Title, &article.Content,
			&article.Excerpt, &article.Category, pq.Array(&article.Tags), &article.ImageURL,
			&article.Views, &article.Published, &article.PublishedAt,
			&article.CreatedAt, &article.UpdatedAt, &authorName, &authorEmail)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetWithAuthor: %w", err)
	}
	return &repository.ArticleWithAuthor{
		Article:     &article,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
	}, nil
}

// ListWithAuthor retrieves paginated articles with author names, newest
// first.
func (repo *ArticleRepo) ListWithAuthor(ctx context.Context, filter repository.ArticleFilter, offset, limit int) ([]repository.ArticleWithAuthor, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter, "a")
	paramIndex := len(args) + 1
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT a.id, a.author_id, a.title, a.content, a.excerpt, a.category, a.tags, a.image_url,
       a.views, a.published, a.published_at, a.created_at, a.updated_at,
       u.name AS author_name, u.email AS author_email
FROM articles a
INNER JOIN users u ON a.author_id = u.id
%s
ORDER BY a.created_at DESC
LIMIT $%d OFFSET $%d`, whereClause, paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListWithAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithAuthor, 0, limit)
	for rows.Next() {
		var article entity.Article
		var authorName, authorEmail string
		if err := rows.Scan(&article.ID, &article.AuthorID, &article.Title, &article.Content,
			&article.Excerpt, &article.Category, pq.Array(&article.Tags), &article.ImageURL,
			&article.Views, &article.Published, &article.PublishedAt,
			&article.CreatedAt, &article.UpdatedAt, &authorName, &authorEmail); err != nil {
			return nil, fmt.Errorf("ListWithAuthor: Scan: %w", err)
		}
		result = append(result, repository.ArticleWithAuthor{
			Article:     &article,
			AuthorName:  authorName,
			AuthorEmail: authorEmail,
		})
	}
	return result, rows.Err()
}

// Count returns the number of articles matching the filter.
func (repo *ArticleRepo) Count(ctx context.Context, filter repository.ArticleFilter) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter, "")
	query := "SELECT COUNT(*) FROM articles " + whereClause

	var count int64
	err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (author_id, title, content, excerpt, category, tags, image_url, published, published_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.AuthorID, article.Title, article.Content, article.Excerpt,
		article.Category, pq.Array(article.Tags), article.ImageURL,
		article.Published, article.PublishedAt, article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title        = $1,
       content      = $2,
       excerpt      = $3,
       category     = $4,
       tags         = $5,
       image_url    = $6,
       published    = $7,
       published_at = $8,
       updated_at   = $9
WHERE id = $10`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Excerpt, article.Category,
		pq.Array(article.Tags), article.ImageURL,
		article.Published, article.PublishedAt, article.UpdatedAt, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

// IncrementViews bumps the view counter atomically and returns the new
// value. Concurrent readers never lose an increment.
func (repo *ArticleRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	const query = `
UPDATE articles
SET views = views + 1
WHERE id = $1
RETURNING views`
	var views int64
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("IncrementViews: %w", err)
	}
	return views, nil
}

// StatsByAuthor aggregates article counts and views per author, sorted
// by total views descending.
func (repo *ArticleRepo) StatsByAuthor(ctx context.Context) ([]repository.AuthorStats, error) {
	const query = `
SELECT u.id, u.name, u.email,
       COUNT(a.id)                                   AS total_articles,
       COUNT(a.id) FILTER (WHERE a.published)        AS published_articles,
       COALESCE(SUM(a.views), 0)                     AS total_views
FROM users u
LEFT JOIN articles a ON a.author_id = u.id
GROUP BY u.id, u.name, u.email
ORDER BY total_views DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("StatsByAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := make([]repository.AuthorStats, 0, 16)
	for rows.Next() {
		var st repository.AuthorStats
		if err := rows.Scan(&st.AuthorID, &st.AuthorName, &st.AuthorEmail,
			&st.TotalArticles, &st.PublishedArticles, &st.TotalViews); err != nil {
			return nil, fmt.Errorf("StatsByAuthor: Scan: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
