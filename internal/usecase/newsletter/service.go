package newsletter

import (
	"context"
	"fmt"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"
)

// Service provides subscriber management. A single record per email is
// kept for the lifetime of the address: unsubscribing deactivates it and
// re-subscribing reactivates the same record.
type Service struct {
	Repo repository.SubscriberRepository
}

// Subscribe registers the email for the newsletter. The address is
// normalized before lookup so case and surrounding whitespace never
// produce duplicate records. Re-subscribing a deactivated address
// reactivates the existing record.
func (s *Service) Subscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	normalized := entity.NormalizeEmail(email)
	if err := entity.ValidateEmail(normalized); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	if existing != nil {
		if existing.Active {
			return nil, ErrAlreadySubscribed
		}
		existing.Active = true
		if err := s.Repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("reactivate subscriber: %w", err)
		}
		return existing, nil
	}

	sub := &entity.Subscriber{
		Email:     normalized,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	return sub, nil
}

// Unsubscribe deactivates the subscription for the email. The record is
// kept so a later re-subscribe reuses it. Unsubscribing an already
// inactive record succeeds, so the operation is idempotent; only a
// missing record is an error.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	normalized := entity.NormalizeEmail(email)
	if err := entity.ValidateEmail(normalized); err != nil {
		return err
	}

	existing, err := s.Repo.FindByEmail(ctx, normalized)
	if err != nil {
		return fmt.Errorf("find subscriber: %w", err)
	}
	if existing == nil {
		return ErrSubscriberNotFound
	}

	existing.Active = false
	if err := s.Repo.Update(ctx, existing); err != nil {
		return fmt.Errorf("deactivate subscriber: %w", err)
	}
	return nil
}

// ListSubscribers returns every subscriber record, active or not.
// Admin only.
func (s *Service) ListSubscribers(ctx context.Context, actor entity.Identity) ([]*entity.Subscriber, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}

	subs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}
