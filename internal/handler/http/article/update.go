package article

import (
	"encoding/json"
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/pathutil"
	"technews/internal/handler/http/respond"
	artUC "technews/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP applies a partial update. Fields absent from the request body
// are left unchanged; explicit empty values (an empty tag list, a blank
// image URL) are applied.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title     *string   `json:"title"`
		Content   *string   `json:"content"`
		Excerpt   *string   `json:"excerpt"`
		Category  *string   `json:"category"`
		Tags      *[]string `json:"tags"`
		ImageURL  *string   `json:"image_url"`
		Published *bool     `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	actor := auth.IdentityFromContext(r.Context())
	updated, err := h.Svc.Update(r.Context(), actor, artUC.UpdateInput{
		ID:        id,
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

	respond.JSON(w, http.StatusOK, toDTO(updated))
}
