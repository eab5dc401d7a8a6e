package article

import (
	"encoding/json"
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/respond"
	artUC "technews/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     string   `json:"title"`
		Content   string   `json:"content"`
		Excerpt   string   `json:"excerpt"`
		Category  string   `json:"category"`
		Tags      []string `json:"tags"`
		ImageURL  string   `json:"image_url"`
		Published bool     `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	actor := auth.IdentityFromContext(r.Context())
	created, err := h.Svc.Create(r.Context(), actor, artUC.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Category:  req.Category,
		Tags:      req.Tags,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	RecordArticleCreated(created.Published)
	respond.JSON(w, http.StatusCreated, toDTO(created))
}
