package article

import (
	"net/http"

	"technews/internal/handler/http/pathutil"
	"technews/internal/handler/http/respond"
	artUC "technews/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	article, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOWithAuthor(*article))
}
