package circuitbreaker

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the persistence adapters depend on.
// Both the raw handle and the breaker-wrapped handle satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB routes database calls through a circuit breaker. When the circuit
// is open, calls fail fast with gobreaker.ErrOpenState instead of piling
// up on a struggling database.
type DB struct {
	db      *sql.DB
	breaker *CircuitBreaker
}

// WrapDB wraps a database handle with the circuit breaker.
func WrapDB(db *sql.DB, breaker *CircuitBreaker) *DB {
	return &DB{db: db, breaker: breaker}
}

// QueryContext executes a query through the breaker.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	res, err := d.breaker.Execute(func() (interface{}, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return res.(*sql.Rows), nil
}

// QueryRowContext executes a single-row query. sql.Row carries its error
// until Scan, so the call passes through and only Scan-level failures
// reach the caller; the breaker state still gates Query and Exec traffic.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement through the breaker.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := d.breaker.Execute(func() (interface{}, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return res.(sql.Result), nil
}

var _ Querier = (*DB)(nil)
var _ Querier = (*sql.DB)(nil)
