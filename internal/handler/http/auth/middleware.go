// Package auth provides authentication HTTP handlers and middleware:
// bearer token verification, login, and the password reset endpoints.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"technews/internal/domain/entity"
	"technews/internal/handler/http/respond"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// TokenVerifier validates a bearer token and resolves the caller identity.
type TokenVerifier interface {
	VerifyToken(token string) (entity.Identity, error)
}

// IdentityFromContext returns the authenticated caller, or the zero
// (anonymous) identity when the request carried no valid token.
func IdentityFromContext(ctx context.Context) entity.Identity {
	if id, ok := ctx.Value(ctxIdentity).(entity.Identity); ok {
		return id
	}
	return entity.Identity{}
}

// WithIdentity returns a context carrying the given identity. Used by
// tests and internal wiring that bypass token verification.
func WithIdentity(ctx context.Context, id entity.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// Authenticate returns middleware that resolves the caller identity from
// the Authorization header. Requests without a token proceed as anonymous;
// requests with a malformed or invalid token are rejected with 401. Access
// control decisions stay with the handlers and usecases.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized: missing bearer token"))
				return
			}

			identity, err := verifier.VerifyToken(token)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized: invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require returns middleware that rejects anonymous requests with 401.
// It must run after Authenticate.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()).Role == entity.RoleAnonymous {
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
