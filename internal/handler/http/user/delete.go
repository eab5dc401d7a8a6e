package user

import (
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/pathutil"
	"technews/internal/handler/http/respond"
	userUC "technews/internal/usecase/user"
)

type DeleteHandler struct{ Svc *userUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/users/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	actor := auth.IdentityFromContext(r.Context())
	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
