package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// WelcomeMailer sends the onboarding email for a freshly registered
// account. Delivery is best effort; registration never fails on it.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, user *entity.User) error
}

// RegisterInput represents the input parameters for registering an
// account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateInput represents the input parameters for updating an account.
// Nil fields are left unchanged.
type UpdateInput struct {
	ID    int64
	Name  *string
	Email *string
	Role  *string
}

const minPasswordLength = 8

// Service provides account management. Every operation is admin only:
// the platform has no self-service signup, editors are onboarded by an
// administrator.
type Service struct {
	Repo   repository.UserRepository
	Mailer WelcomeMailer // optional
	Logger *slog.Logger  // optional
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Register creates a new account with a bcrypt-hashed password and sends
// a welcome email. The email must not belong to an existing account.
func (s *Service) Register(ctx context.Context, actor entity.Identity, in RegisterInput) (*entity.User, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}
	if in.Name == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	email := entity.NormalizeEmail(in.Email)
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}
	role := entity.ParseRole(in.Role)
	if role == entity.RoleAnonymous {
		return nil, &entity.ValidationError{Field: "role", Message: "must be admin or editor"}
	}

	existing, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role.String(),
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.Mailer != nil {
		if err := s.Mailer.SendWelcome(ctx, u); err != nil {
			s.logger().Warn("welcome email failed",
				slog.Int64("user_id", u.ID),
				slog.String("error", err.Error()))
		}
	}
	return u, nil
}

// Get retrieves a single account. Admin only.
func (s *Service) Get(ctx context.Context, actor entity.Identity, id int64) (*entity.User, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}
	if id <= 0 {
		return nil, ErrInvalidUserID
	}

	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// List returns every account. Admin only.
func (s *Service) List(ctx context.Context, actor entity.Identity) ([]*entity.User, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}

	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListEditors returns the accounts holding the editor role. Admin only.
func (s *Service) ListEditors(ctx context.Context, actor entity.Identity) ([]*entity.User, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}

	users, err := s.Repo.ListByRole(ctx, entity.RoleEditor.String())
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}
	return users, nil
}

// Update modifies an account. Only non-nil fields are applied. Admin only.
func (s *Service) Update(ctx context.Context, actor entity.Identity, in UpdateInput) (*entity.User, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}
	if in.ID <= 0 {
		return nil, ErrInvalidUserID
	}

	u, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, &entity.ValidationError{Field: "name", Message: "cannot be empty"}
		}
		u.Name = *in.Name
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if err := entity.ValidateEmail(email); err != nil {
			return nil, err
		}
		if email != u.Email {
			existing, err := s.Repo.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("find user: %w", err)
			}
			if existing != nil {
				return nil, ErrEmailTaken
			}
		}
		u.Email = email
	}
	if in.Role != nil {
		role := entity.ParseRole(*in.Role)
		if role == entity.RoleAnonymous {
			return nil, &entity.ValidationError{Field: "role", Message: "must be admin or editor"}
		}
		u.Role = role.String()
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes an account. Admins cannot delete themselves, which
// guarantees at least one admin always remains reachable.
func (s *Service) Delete(ctx context.Context, actor entity.Identity, id int64) error {
	if !actor.CanManageUsers() {
		return ErrForbidden
	}
	if id <= 0 {
		return ErrInvalidUserID
	}
	if id == actor.UserID {
		return &entity.ValidationError{Field: "id", Message: "own account cannot be deleted"}
	}

	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
