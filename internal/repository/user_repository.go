package repository

import (
	"context"
	"time"

	"technews/internal/domain/entity"
)

type UserRepository interface {
	// Get retrieves a user by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.User, error)
	// FindByEmail retrieves a user by email. Returns (nil, nil) if not found.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error

	// SetResetToken stores the SHA-256 hash of a password reset token
	// along with its expiry for the given user. Any previous token is
	// replaced.
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	// FindByResetToken retrieves the user holding an unexpired reset
	// token with the given hash. Returns (nil, nil) if no match.
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error)
	// UpdatePassword replaces the user's password hash and clears any
	// outstanding reset token.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
