package user

import (
	"encoding/json"
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/respond"
	userUC "technews/internal/usecase/user"
)

type RegisterHandler struct{ Svc *userUC.Service }

// ServeHTTP creates a new editor or admin account. A welcome email is
// sent best-effort.
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	actor := auth.IdentityFromContext(r.Context())
	created, err := h.Svc.Register(r.Context(), actor, userUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(created))
}
