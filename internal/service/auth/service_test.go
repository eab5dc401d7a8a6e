package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"
	"technews/internal/service/auth"

	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret-at-least-32-characters!!")

/* ───────── stub repository ───────── */

type resetRecord struct {
	tokenHash string
	expiresAt time.Time
}

type stubUsers struct {
	byEmail map[string]*entity.User
	resets  map[int64]resetRecord
	updated map[int64]string // userID -> new password hash
}

func newStub(users ...*entity.User) *stubUsers {
	s := &stubUsers{
		byEmail: map[string]*entity.User{},
		resets:  map[int64]resetRecord{},
		updated: map[int64]string{},
	}
	for _, u := range users {
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *stubUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
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

func (s *stubUsers) SetResetToken(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	s.resets[userID] = resetRecord{tokenHash: tokenHash, expiresAt: expiresAt}
	return nil
}

func (s *stubUsers) FindByResetToken(_ context.Context, tokenHash string) (*entity.User, error) {
	for userID, rec := range s.resets {
		if rec.tokenHash == tokenHash && rec.expiresAt.After(time.Now()) {
			return s.Get(context.Background(), userID)
		}
	}
	return nil, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	s.updated[userID] = passwordHash
	delete(s.resets, userID)
	return nil
}

var _ repository.UserRepository = (*stubUsers)(nil)

type stubMailer struct {
	tokens []string
}

func (m *stubMailer) SendPasswordReset(_ context.Context, _ *entity.User, token string) error {
	m.tokens = append(m.tokens, token)
	return nil
}

func testUser(t *testing.T) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &entity.User{
		ID:           7,
		Name:         "Editor",
		Email:        "editor@example.com",
		PasswordHash: string(hash),
		Role:         "editor",
	}
}

/* ───────── credentials ───────── */

func TestValidateCredentials(t *testing.T) {
	u := testUser(t)
	svc := auth.NewService(newStub(u), testSecret)

	got, err := svc.ValidateCredentials(context.Background(), auth.Credentials{
		Email:    "Editor@Example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("ValidateCredentials err=%v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("got user %d, want %d", got.ID, u.ID)
	}
}

func TestValidateCredentials_failures(t *testing.T) {
	u := testUser(t)
	svc := auth.NewService(newStub(u), testSecret)

	tests := []struct {
		name  string
		creds auth.Credentials
	}{
		{"wrong password", auth.Credentials{Email: u.Email, Password: "wrong"}},
		{"unknown email", auth.Credentials{Email: "ghost@example.com", Password: "hunter2hunter2"}},
		{"empty email", auth.Credentials{Password: "hunter2hunter2"}},
		{"empty password", auth.Credentials{Email: u.Email}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateCredentials(context.Background(), tt.creds)
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				t.Fatalf("want ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

/* ───────── tokens ───────── */

func TestIssueAndVerifyToken(t *testing.T) {
	u := testUser(t)
	svc := auth.NewService(newStub(u), testSecret)

	token, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken err=%v", err)
	}
	if identity.UserID != u.ID || identity.Role != entity.RoleEditor {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestVerifyToken_rejectsBadTokens(t *testing.T) {
	u := testUser(t)
	svc := auth.NewService(newStub(u), testSecret)
	otherSvc := auth.NewService(newStub(u), []byte("another-secret-also-32-chars-long!!!"))

	foreign, err := otherSvc.IssueToken(u)
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"empty":        "",
		"wrong secret": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.VerifyToken(token); !errors.Is(err, auth.ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

/* ───────── password reset ───────── */

func TestPasswordResetFlow(t *testing.T) {
	u := testUser(t)
	stub := newStub(u)
	mailer := &stubMailer{}
	svc := auth.NewService(stub, testSecret, auth.WithResetMailer(mailer))

	if err := svc.RequestPasswordReset(context.Background(), u.Email); err != nil {
		t.Fatalf("RequestPasswordReset err=%v", err)
	}
	if len(mailer.tokens) != 1 {
		t.Fatalf("want one reset email, got %d", len(mailer.tokens))
	}
	token := mailer.tokens[0]

	// The raw token is never stored.
	if rec, ok := stub.resets[u.ID]; !ok || rec.tokenHash == token {
		t.Fatalf("stored record must hold the hash, got %+v", rec)
	}

	if err := svc.ResetPassword(context.Background(), token, "new-password-123"); err != nil {
		t.Fatalf("ResetPassword err=%v", err)
	}
	newHash, ok := stub.updated[u.ID]
	if !ok {
		t.Fatal("password not updated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-password-123")); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}

	// The token is single use.
	if err := svc.ResetPassword(context.Background(), token, "another-password"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken on reuse, got %v", err)
	}
}

func TestRequestPasswordReset_unknownEmailIsSilent(t *testing.T) {
	mailer := &stubMailer{}
	svc := auth.NewService(newStub(), testSecret, auth.WithResetMailer(mailer))

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}
	if len(mailer.tokens) != 0 {
		t.Fatal("no email expected for unknown address")
	}
}

func TestResetPassword_expiredToken(t *testing.T) {
	u := testUser(t)
	stub := newStub(u)
	mailer := &stubMailer{}
	svc := auth.NewService(stub, testSecret, auth.WithResetMailer(mailer))

	if err := svc.RequestPasswordReset(context.Background(), u.Email); err != nil {
		t.Fatalf("RequestPasswordReset err=%v", err)
	}
	rec := stub.resets[u.ID]
	rec.expiresAt = time.Now().Add(-time.Minute)
	stub.resets[u.ID] = rec

	err := svc.ResetPassword(context.Background(), mailer.tokens[0], "new-password-123")
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for expired token, got %v", err)
	}
}

func TestResetPassword_weakPassword(t *testing.T) {
	svc := auth.NewService(newStub(), testSecret)

	err := svc.ResetPassword(context.Background(), "whatever", "short")
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want validation error, got %v", err)
	}
}
