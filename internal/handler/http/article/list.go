package article

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"technews/internal/common/pagination"
	"technews/internal/handler/http/requestid"
	"technews/internal/handler/http/respond"
	"technews/internal/repository"
	artUC "technews/internal/usecase/article"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

type listResponse struct {
	Data       []DTO               `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

// ServeHTTP lists articles with optional filters.
//
// Query parameters:
//   - page, limit: pagination
//   - category: exact category match
//   - published: "true" or "false"
//   - q: free-text search over title, content and category
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := h.Logger.With(slog.String("request_id", reqID))

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.List(ctx, filter, params)
	if err != nil {
		logger.Error("failed to list articles",
			slog.String("error", err.Error()),
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, toDTOWithAuthor(item))
	}

	logger.Info("article list request",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", len(dtos)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, listResponse{
		Data:       dtos,
		Pagination: result.Pagination,
	})
}

func parseFilter(r *http.Request) (repository.ArticleFilter, error) {
	q := r.URL.Query()
	filter := repository.ArticleFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}

	if raw := q.Get("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, &invalidFilterError{param: "published"}
		}
		filter.Published = &published
	}

	return filter, nil
}

type invalidFilterError struct{ param string }

func (e *invalidFilterError) Error() string {
	return "invalid query parameter: " + e.param
}
