package user

import (
	"encoding/json"
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/pathutil"
	"technews/internal/handler/http/respond"
	userUC "technews/internal/usecase/user"
)

type UpdateHandler struct{ Svc *userUC.Service }

// ServeHTTP applies a partial update; absent fields are left unchanged.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/users/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	actor := auth.IdentityFromContext(r.Context())
	updated, err := h.Svc.Update(r.Context(), actor, userUC.UpdateInput{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(updated))
}
