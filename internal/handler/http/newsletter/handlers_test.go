package newsletter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/handler/http/auth"
	"technews/internal/repository"
	newsUC "technews/internal/usecase/newsletter"
)

/* ──────────────────────────── test fixtures ───────────────────────────── */

type stubSubs struct {
	byEmail map[string]*entity.Subscriber
	nextID  int64
}

func newStubSubs(subs ...*entity.Subscriber) *stubSubs {
	s := &stubSubs{byEmail: make(map[string]*entity.Subscriber), nextID: 1}
	for _, sub := range subs {
		s.byEmail[sub.Email] = sub
		if sub.ID >= s.nextID {
			s.nextID = sub.ID + 1
		}
	}
	return s
}

func (s *stubSubs) FindByEmail(_ context.Context, email string) (*entity.Subscriber, error) {
	sub, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (s *stubSubs) ListActive(_ context.Context) ([]*entity.Subscriber, error) {
	out := make([]*entity.Subscriber, 0)
	for _, sub := range s.byEmail {
		if sub.Active {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubSubs) List(_ context.Context) ([]*entity.Subscriber, error) {
	out := make([]*entity.Subscriber, 0)
	for _, sub := range s.byEmail {
		cp := *sub
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubSubs) Create(_ context.Context, sub *entity.Subscriber) error {
	sub.ID = s.nextID
	s.nextID++
	cp := *sub
	s.byEmail[sub.Email] = &cp
	return nil
}

func (s *stubSubs) Update(_ context.Context, sub *entity.Subscriber) error {
	cp := *sub
	s.byEmail[sub.Email] = &cp
	return nil
}

var _ repository.SubscriberRepository = (*stubSubs)(nil)

func postJSON(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rr
}

/* ────────────────────────────── 1. subscribe ──────────────────────────── */

func TestSubscribeHandler(t *testing.T) {
	repo := newStubSubs()
	handler := SubscribeHandler{&newsUC.Service{Repo: repo}}

	rr := postJSON(handler, "/newsletter/subscribe", `{"email":"Reader@Example.COM"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var dto subscriberDTO
	if err := json.NewDecoder(rr.Body).Decode(&dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Email != "reader@example.com" {
		t.Errorf("email = %q, want normalized lowercase", dto.Email)
	}
	if !dto.Active {
		t.Error("new subscriber should be active")
	}
}

func TestSubscribeHandler_Failures(t *testing.T) {
	repo := newStubSubs(&entity.Subscriber{ID: 1, Email: "reader@example.com", Active: true})
	handler := SubscribeHandler{&newsUC.Service{Repo: repo}}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "already subscribed", body: `{"email":"reader@example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid email", body: `{"email":"not-an-email"}`, wantStatus: http.StatusBadRequest},
		{name: "empty email", body: `{"email":""}`, wantStatus: http.StatusBadRequest},
		{name: "malformed JSON", body: `{"email"`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(handler, "/newsletter/subscribe", tt.body)
			if rr.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

/* ───────────────────────────── 2. unsubscribe ─────────────────────────── */

func TestUnsubscribeHandler(t *testing.T) {
	repo := newStubSubs(&entity.Subscriber{ID: 1, Email: "reader@example.com", Active: true, CreatedAt: time.Now()})
	svc := &newsUC.Service{Repo: repo}

	rr := postJSON(UnsubscribeHandler{svc}, "/newsletter/unsubscribe", `{"email":"reader@example.com"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if repo.byEmail["reader@example.com"].Active {
		t.Error("subscriber should be inactive")
	}

	// A second unsubscribe of the same record still succeeds; the record
	// exists, so the operation is idempotent.
	rr = postJSON(UnsubscribeHandler{svc}, "/newsletter/unsubscribe", `{"email":"reader@example.com"}`)
	if rr.Code != http.StatusOK {
		t.Errorf("repeat unsubscribe: got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if repo.byEmail["reader@example.com"].Active {
		t.Error("subscriber reactivated by repeat unsubscribe")
	}
}

func TestUnsubscribeHandler_UnknownEmail(t *testing.T) {
	handler := UnsubscribeHandler{&newsUC.Service{Repo: newStubSubs()}}

	rr := postJSON(handler, "/newsletter/unsubscribe", `{"email":"nobody@example.com"}`)
	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rr.Code)
	}
}

/* ──────────────────────── 3. resubscribe lifecycle ────────────────────── */

func TestSubscribeHandler_ReactivatesExistingRecord(t *testing.T) {
	repo := newStubSubs(&entity.Subscriber{ID: 7, Email: "reader@example.com", Active: false, CreatedAt: time.Now()})
	handler := SubscribeHandler{&newsUC.Service{Repo: repo}}

	rr := postJSON(handler, "/newsletter/subscribe", `{"email":"reader@example.com"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var dto subscriberDTO
	if err := json.NewDecoder(rr.Body).Decode(&dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.ID != 7 {
		t.Errorf("id = %d, want the original record reactivated", dto.ID)
	}
	if len(repo.byEmail) != 1 {
		t.Errorf("got %d records, want 1", len(repo.byEmail))
	}
}

/* ───────────────────────── 4. admin subscriber list ───────────────────── */

func TestListHandler_AdminOnly(t *testing.T) {
	repo := newStubSubs(
		&entity.Subscriber{ID: 1, Email: "a@example.com", Active: true},
		&entity.Subscriber{ID: 2, Email: "b@example.com", Active: false},
	)
	handler := ListHandler{&newsUC.Service{Repo: repo}}

	t.Run("admin sees all records", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/newsletter/subscribers", nil)
		req = req.WithContext(auth.WithIdentity(req.Context(), entity.Identity{UserID: 1, Role: entity.RoleAdmin}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
		}
		var subs []subscriberDTO
		if err := json.NewDecoder(rr.Body).Decode(&subs); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(subs) != 2 {
			t.Errorf("got %d subscribers, want 2 including inactive", len(subs))
		}
	})

	t.Run("editor is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/newsletter/subscribers", nil)
		req = req.WithContext(auth.WithIdentity(req.Context(), entity.Identity{UserID: 2, Role: entity.RoleEditor}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("got status %d, want 403", rr.Code)
		}
	})
}
