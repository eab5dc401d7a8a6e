package user

import (
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/pathutil"
	"technews/internal/handler/http/respond"
	userUC "technews/internal/usecase/user"
)

type GetHandler struct{ Svc *userUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/users/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	actor := auth.IdentityFromContext(r.Context())
	u, err := h.Svc.Get(r.Context(), actor, id)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(u))
}
