package article

import (
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/respond"
	"technews/internal/repository"
	artUC "technews/internal/usecase/article"
)

type StatsHandler struct{ Svc *artUC.Service }

type authorStatsDTO struct {
	AuthorID          int64  `json:"author_id"`
	AuthorName        string `json:"author_name"`
	AuthorEmail       string `json:"author_email"`
	TotalArticles     int64  `json:"total_articles"`
	PublishedArticles int64  `json:"published_articles"`
	TotalViews        int64  `json:"total_views"`
}

// ServeHTTP reports per-author article counts and view totals, ordered by
// total views. Admin only.
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFromContext(r.Context())

	stats, err := h.Svc.Stats(r.Context(), actor)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toStatsDTOs(stats))
}

func toStatsDTOs(stats []repository.AuthorStats) []authorStatsDTO {
	out := make([]authorStatsDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, authorStatsDTO{
			AuthorID:          s.AuthorID,
			AuthorName:        s.AuthorName,
			AuthorEmail:       s.AuthorEmail,
			TotalArticles:     s.TotalArticles,
			PublishedArticles: s.PublishedArticles,
			TotalViews:        s.TotalViews,
		})
	}
	return out
}
