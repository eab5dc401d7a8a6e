// Package auth handles credential validation, JWT issuance and the
// password reset flow. It is framework-agnostic; HTTP concerns live in
// the handler layer.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for any email/password mismatch.
	// The caller never learns whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a JWT or reset token fails
	// verification or has expired.
	ErrInvalidToken = errors.New("invalid token")
)

const (
	tokenTTL      = 1 * time.Hour
	resetTokenTTL = 1 * time.Hour
)

// dummyHash keeps the bcrypt cost of a failed lookup comparable to a
// real comparison so response timing does not reveal whether the email
// exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Credentials represents a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// ResetMailer delivers the password reset email carrying the one-time
// token.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, user *entity.User, token string) error
}

// Service validates credentials against stored accounts and issues
// signed tokens.
type Service struct {
	users  repository.UserRepository
	secret []byte
	mailer ResetMailer
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithResetMailer sets the mailer used for password reset emails.
func WithResetMailer(m ResetMailer) Option {
	return func(s *Service) { s.mailer = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates an authentication service signing tokens with
// secret.
func NewService(users repository.UserRepository, secret []byte, opts ...Option) *Service {
	s := &Service{
		users:  users,
		secret: secret,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateCredentials checks the email/password pair against the stored
// bcrypt hash. A bcrypt comparison runs even when the email is unknown.
func (s *Service) ValidateCredentials(ctx context.Context, creds Credentials) (*entity.User, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, entity.NormalizeEmail(creds.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken signs a JWT for the user, valid for one hour.
func (s *Service) IssueToken(u *entity.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.Email,
		"uid":  u.ID,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and verifies a JWT, returning the identity encoded
// in its claims.
func (s *Service) VerifyToken(tokenString string) (entity.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return entity.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Identity{}, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return entity.Identity{}, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return entity.Identity{}, ErrInvalidToken
	}

	return entity.Identity{
		UserID: int64(uid),
		Role:   entity.ParseRole(role),
	}, nil
}

// RequestPasswordReset generates a one-time reset token for the account
// and emails it. Only the SHA-256 hash of the token is stored. The call
// succeeds silently for unknown emails so the endpoint cannot be used
// to probe which addresses have accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil
	}

	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, hashToken(token), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, u, token); err != nil {
			return fmt.Errorf("send reset email: %w", err)
		}
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the account's
// password. Expired or unknown tokens fail with ErrInvalidToken.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return &entity.ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}

	u, err := s.users.FindByResetToken(ctx, hashToken(token))
	if err != nil {
		return fmt.Errorf("find reset token: %w", err)
	}
	if u == nil {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("password reset completed", slog.Int64("user_id", u.ID))
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
