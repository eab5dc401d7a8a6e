package postgres

import (
	"fmt"
	"strings"

	"technews/internal/repository"
)

// ArticleQueryBuilder builds WHERE clauses for article listing queries.
// Centralizing the clause construction keeps the list and count queries
// consistent.
type ArticleQueryBuilder struct{}

func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause constructs a WHERE clause and its positional arguments
// from the filter. alias prefixes column references when the query joins
// other tables; pass "" for unqualified columns.
func (b *ArticleQueryBuilder) BuildWhereClause(filter repository.ArticleFilter, alias string) (string, []any) {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}

	var conditions []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("%scategory = $%d", prefix, len(args)))
	}

	if filter.Published != nil {
		args = append(args, *filter.Published)
		conditions = append(conditions, fmt.Sprintf("%spublished = $%d", prefix, len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(%stitle ILIKE $%d OR %scontent ILIKE $%d OR %scategory ILIKE $%d)",
			prefix, n, prefix, n, prefix, n))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
