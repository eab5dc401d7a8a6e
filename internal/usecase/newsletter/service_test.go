package newsletter_test

import (
	"context"
	"errors"
	"testing"

	"technews/internal/domain/entity"
	"technews/internal/repository"
	"technews/internal/usecase/newsletter"
)

/* ───────── stub repository ───────── */

type stubSubs struct {
	data   map[string]*entity.Subscriber
	nextID int64
	err    error
}

func newStub() *stubSubs {
	return &stubSubs{data: map[string]*entity.Subscriber{}, nextID: 1}
}

func (s *stubSubs) FindByEmail(_ context.Context, email string) (*entity.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	if sub, ok := s.data[email]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (s *stubSubs) ListActive(_ context.Context) ([]*entity.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Subscriber
	for _, sub := range s.data {
		if sub.Active {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *stubSubs) List(_ context.Context) ([]*entity.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Subscriber
	for _, sub := range s.data {
		out = append(out, sub)
	}
	return out, nil
}

func (s *stubSubs) Create(_ context.Context, sub *entity.Subscriber) error {
	if s.err != nil {
		return s.err
	}
	sub.ID = s.nextID
	s.nextID++
	cp := *sub
	s.data[sub.Email] = &cp
	return nil
}

func (s *stubSubs) Update(_ context.Context, sub *entity.Subscriber) error {
	if s.err != nil {
		return s.err
	}
	cp := *sub
	s.data[sub.Email] = &cp
	return nil
}

var _ repository.SubscriberRepository = (*stubSubs)(nil)

/* ───────── Subscribe ───────── */

func TestService_Subscribe(t *testing.T) {
	stub := newStub()
	svc := newsletter.Service{Repo: stub}

	sub, err := svc.Subscribe(context.Background(), "Reader@Example.COM ")
	if err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if sub.Email != "reader@example.com" {
		t.Fatalf("email not normalized: %q", sub.Email)
	}
	if !sub.Active || sub.ID == 0 {
		t.Fatalf("unexpected record: %+v", sub)
	}
}

func TestService_Subscribe_invalidEmail(t *testing.T) {
	svc := newsletter.Service{Repo: newStub()}

	_, err := svc.Subscribe(context.Background(), "not-an-email")
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestService_Subscribe_duplicate(t *testing.T) {
	stub := newStub()
	svc := newsletter.Service{Repo: stub}

	if _, err := svc.Subscribe(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("first Subscribe err=%v", err)
	}

	// Same address in a different case is the same subscription.
	_, err := svc.Subscribe(context.Background(), "READER@example.com")
	if !errors.Is(err, newsletter.ErrAlreadySubscribed) {
		t.Fatalf("want ErrAlreadySubscribed, got %v", err)
	}
	if len(stub.data) != 1 {
		t.Fatalf("duplicate subscribe created a second record: %d", len(stub.data))
	}
}

/* ───────── Unsubscribe ───────── */

func TestService_Unsubscribe(t *testing.T) {
	stub := newStub()
	svc := newsletter.Service{Repo: stub}

	if _, err := svc.Subscribe(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("Unsubscribe err=%v", err)
	}
	if stub.data["reader@example.com"].Active {
		t.Fatal("record still active after unsubscribe")
	}

	// Unsubscribing an already inactive record is a successful no-op;
	// only a missing record reports not found.
	if err := svc.Unsubscribe(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("repeat Unsubscribe err=%v", err)
	}
	if stub.data["reader@example.com"].Active {
		t.Fatal("record reactivated by repeat unsubscribe")
	}
}

func TestService_Unsubscribe_unknownEmail(t *testing.T) {
	svc := newsletter.Service{Repo: newStub()}

	err := svc.Unsubscribe(context.Background(), "ghost@example.com")
	if !errors.Is(err, newsletter.ErrSubscriberNotFound) {
		t.Fatalf("want ErrSubscriberNotFound, got %v", err)
	}
}

/* ───────── resubscribe lifecycle ───────── */

func TestService_ResubscribeReactivatesSameRecord(t *testing.T) {
	stub := newStub()
	svc := newsletter.Service{Repo: stub}

	first, err := svc.Subscribe(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("Unsubscribe err=%v", err)
	}

	second, err := svc.Subscribe(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("re-Subscribe err=%v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("re-subscribe created a new record: %d != %d", second.ID, first.ID)
	}
	if !second.Active {
		t.Fatal("re-subscribed record must be active")
	}
	if len(stub.data) != 1 {
		t.Fatalf("want a single record across the lifecycle, got %d", len(stub.data))
	}
}

/* ───────── ListSubscribers ───────── */

func TestService_ListSubscribers_adminOnly(t *testing.T) {
	stub := newStub()
	svc := newsletter.Service{Repo: stub}

	if _, err := svc.Subscribe(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if _, err := svc.Subscribe(context.Background(), "b@example.com"); err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "b@example.com"); err != nil {
		t.Fatalf("Unsubscribe err=%v", err)
	}

	editor := entity.Identity{UserID: 2, Role: entity.RoleEditor}
	if _, err := svc.ListSubscribers(context.Background(), editor); !errors.Is(err, newsletter.ErrForbidden) {
		t.Fatalf("want ErrForbidden for editor, got %v", err)
	}

	admin := entity.Identity{UserID: 1, Role: entity.RoleAdmin}
	subs, err := svc.ListSubscribers(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListSubscribers err=%v", err)
	}
	// Inactive subscribers are included for the admin view.
	if len(subs) != 2 {
		t.Fatalf("want both records, got %d", len(subs))
	}
}
