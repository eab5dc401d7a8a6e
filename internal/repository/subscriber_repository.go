package repository

import (
	"context"

	"technews/internal/domain/entity"
)

type SubscriberRepository interface {
	// FindByEmail retrieves a subscriber by email regardless of active
	// state. Returns (nil, nil) if no record exists for the address.
	FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error)
	// ListActive retrieves all subscribers whose active flag is true.
	// Order is not significant; the expected scale is small enough that
	// no pagination is applied.
	ListActive(ctx context.Context) ([]*entity.Subscriber, error)
	// List retrieves all subscriber records, active or not.
	List(ctx context.Context) ([]*entity.Subscriber, error)
	Create(ctx context.Context, sub *entity.Subscriber) error
	Update(ctx context.Context, sub *entity.Subscriber) error
}
