package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"technews/internal/domain/entity"
	"technews/internal/handler/http/requestid"
	"technews/internal/handler/http/respond"
	authservice "technews/internal/service/auth"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ForgotPasswordHandler starts the password reset flow. The response is
// 202 whether or not the email belongs to an account, so the endpoint
// cannot be used to probe for registered addresses.
func ForgotPasswordHandler(svc *authservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req forgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
		if req.Email == "" {
			respond.SafeError(w, http.StatusBadRequest, errors.New("email is required"))
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			logger.Error("password reset request failed", slog.String("error", err.Error()))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		RecordPasswordReset("requested")
		respond.JSON(w, http.StatusAccepted, map[string]string{
			"message": "if the address is registered, a reset email has been sent",
		})
	}
}

// ResetPasswordHandler completes the password reset flow. The token from
// the reset email arrives as the trailing path segment.
func ResetPasswordHandler(svc *authservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		token := strings.TrimPrefix(r.URL.Path, "/auth/reset-password/")
		if token == "" || strings.Contains(token, "/") {
			respond.SafeError(w, http.StatusBadRequest, errors.New("token is required"))
			return
		}

		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		err := svc.ResetPassword(r.Context(), token, req.NewPassword)
		switch {
		case err == nil:
		case errors.Is(err, authservice.ErrInvalidToken):
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized: invalid or expired token"))
			return
		default:
			var vErr *entity.ValidationError
			if errors.As(err, &vErr) {
				respond.SafeError(w, http.StatusBadRequest, err)
				return
			}
			logger.Error("password reset failed", slog.String("error", err.Error()))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		RecordPasswordReset("completed")
		respond.JSON(w, http.StatusOK, map[string]string{
			"message": "password updated",
		})
	}
}

// Register registers the authentication routes with the given mux. Each
// route is wrapped with limit so credential guessing and reset-token
// probing share one throttle.
func Register(mux *http.ServeMux, svc *authservice.Service, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("POST /auth/token", limit(LoginHandler(svc)))
	mux.Handle("POST /auth/forgot-password", limit(ForgotPasswordHandler(svc)))
	mux.Handle("PUT /auth/reset-password/", limit(ResetPasswordHandler(svc)))
}
