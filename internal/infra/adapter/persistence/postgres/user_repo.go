package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"
	"technews/internal/resilience/circuitbreaker"
)

type UserRepo struct {
	db circuitbreaker.Querier
}

func NewUserRepo(db circuitbreaker.Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, role, created_at`

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &u, nil
}

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1`
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return &u, nil
}

func (repo *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at`
	return repo.list(ctx, "List", query)
}

func (repo *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE role = $1
ORDER BY created_at`
	return repo.list(ctx, "ListByRole", query, role)
}

func (repo *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 16)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
INSERT INTO users (name, email, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Update(ctx context.Context, u *entity.User) error {
	const query = `
UPDATE users SET
       name  = $1,
       email = $2,
       role  = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, u.Name, u.Email, u.Role, u.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *UserRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *UserRepo) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	const query = `
UPDATE users SET
       reset_token_hash = $1,
       reset_expires_at = $2
WHERE id = $3`
	res, err := repo.db.ExecContext(ctx, query, tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("SetResetToken: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SetResetToken: no rows affected")
	}
	return nil
}

func (repo *UserRepo) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE reset_token_hash = $1
  AND reset_expires_at > now()
LIMIT 1`
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, tokenHash).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByResetToken: %w", err)
	}
	return &u, nil
}

// UpdatePassword replaces the password hash and clears the reset token so
// it cannot be replayed.
func (repo *UserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const query = `
UPDATE users SET
       password_hash    = $1,
       reset_token_hash = NULL,
       reset_expires_at = NULL
WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdatePassword: no rows affected")
	}
	return nil
}
