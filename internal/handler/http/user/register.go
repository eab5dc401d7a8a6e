package user

import (
	"net/http"

	"technews/internal/handler/http/auth"
	userUC "technews/internal/usecase/user"
)

// Register registers the user administration routes with the given mux.
// Every route requires authentication; the usecase layer additionally
// enforces the admin role.
func Register(mux *http.ServeMux, svc *userUC.Service) {
	mux.Handle("POST /auth/register", auth.Require(RegisterHandler{svc}))

	mux.Handle("GET /users", auth.Require(ListHandler{svc}))
	mux.Handle("GET /users/editors", auth.Require(ListEditorsHandler{svc}))
	mux.Handle("GET /users/", auth.Require(GetHandler{svc}))
	mux.Handle("PUT /users/", auth.Require(UpdateHandler{svc}))
	mux.Handle("DELETE /users/", auth.Require(DeleteHandler{svc}))
}
