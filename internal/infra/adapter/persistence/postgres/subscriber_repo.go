package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"technews/internal/domain/entity"
	"technews/internal/repository"
	"technews/internal/resilience/circuitbreaker"
)

type SubscriberRepo struct {
	db circuitbreaker.Querier
}

func NewSubscriberRepo(db circuitbreaker.Querier) repository.SubscriberRepository {
	return &SubscriberRepo{db: db}
}

func (repo *SubscriberRepo) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	const query = `
SELECT id, email, active, created_at
FROM subscribers
WHERE email = $1
LIMIT 1`
	var sub entity.Subscriber
	err := repo.db.QueryRowContext(ctx, query, email).
		Scan(&sub.ID, &sub.Email, &sub.Active, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return &sub, nil
}

// ListActive returns the current fan-out recipients.
func (repo *SubscriberRepo) ListActive(ctx context.Context) ([]*entity.Subscriber, error) {
	const query = `
SELECT id, email, active, created_at
FROM subscribers
WHERE active = TRUE
ORDER BY created_at`
	return repo.list(ctx, "ListActive", query)
}

func (repo *SubscriberRepo) List(ctx context.Context) ([]*entity.Subscriber, error) {
	const query = `
SELECT id, email, active, created_at
FROM subscribers
ORDER BY created_at`
	return repo.list(ctx, "List", query)
}

func (repo *SubscriberRepo) list(ctx context.Context, op, query string) ([]*entity.Subscriber, error) {
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.Subscriber, 0, 100)
	for rows.Next() {
		var sub entity.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (repo *SubscriberRepo) Create(ctx context.Context, sub *entity.Subscriber) error {
	const query = `
INSERT INTO subscribers (email, active, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, sub.Email, sub.Active, sub.CreatedAt).
		Scan(&sub.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SubscriberRepo) Update(ctx context.Context, sub *entity.Subscriber) error {
	const query = `
UPDATE subscribers SET
       email  = $1,
       active = $2
WHERE id = $3`
	res, err := repo.db.ExecContext(ctx, query, sub.Email, sub.Active, sub.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}
