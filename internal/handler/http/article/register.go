package article

import (
	"log/slog"
	"net/http"

	"technews/internal/common/pagination"
	"technews/internal/handler/http/auth"
	artUC "technews/internal/usecase/article"
)

// Register registers all article HTTP handlers with the given mux.
// Listing and reading are public; creating, updating, deleting and the
// stats endpoint require authentication.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /articles/stats/views", auth.Require(StatsHandler{svc}))
	mux.Handle("GET /articles/", GetHandler{svc})

	mux.Handle("POST /articles", auth.Require(CreateHandler{svc}))
	mux.Handle("PUT /articles/", auth.Require(UpdateHandler{svc}))
	mux.Handle("DELETE /articles/", auth.Require(DeleteHandler{svc}))
}
