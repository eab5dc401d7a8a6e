package article

import (
	"context"
	"io"
	"log/slog"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubUsers backs the token verifier with a single account.
type stubUsers struct {
	user *entity.User
}

func (s *stubUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUsers) List(_ context.Context) ([]*entity.User, error) { return nil, nil }
func (s *stubUsers) ListByRole(_ context.Context, _ string) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) Create(_ context.Context, _ *entity.User) error { return nil }
func (s *stubUsers) Update(_ context.Context, _ *entity.User) error { return nil }
func (s *stubUsers) Delete(_ context.Context, _ int64) error        { return nil }
func (s *stubUsers) SetResetToken(_ context.Context, _ int64, _ string, _ time.Time) error {
	return nil
}
func (s *stubUsers) FindByResetToken(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) UpdatePassword(_ context.Context, _ int64, _ string) error { return nil }

var _ repository.UserRepository = (*stubUsers)(nil)
