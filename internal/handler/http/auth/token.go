package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"technews/internal/handler/http/requestid"
	"technews/internal/handler/http/respond"
	authservice "technews/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// LoginHandler authenticates a user by email and password and issues a
// signed JWT.
func LoginHandler(svc *authservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := svc.ValidateCredentials(r.Context(), authservice.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		token, err := svc.IssueToken(user)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest(user.Role, "failure")
			RecordAuthDuration(user.Role, time.Since(start).Seconds())
			respond.SafeError(w, http.StatusInternalServerError, errors.New("token generation failed"))
			return
		}

		logger.Info("authentication successful",
			slog.String("user_email", user.Email),
			slog.String("role", user.Role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		RecordAuthRequest(user.Role, "success")
		RecordAuthDuration(user.Role, time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
