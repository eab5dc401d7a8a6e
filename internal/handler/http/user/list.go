package user

import (
	"net/http"

	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/respond"
	userUC "technews/internal/usecase/user"
)

type ListHandler struct{ Svc *userUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFromContext(r.Context())

	users, err := h.Svc.List(r.Context(), actor)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(users))
}

type ListEditorsHandler struct{ Svc *userUC.Service }

func (h ListEditorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFromContext(r.Context())

	editors, err := h.Svc.ListEditors(r.Context(), actor)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(editors))
}
