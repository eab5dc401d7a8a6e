// Package newsletter provides HTTP handlers for newsletter subscription
// endpoints: subscribing, unsubscribing, and the admin subscriber list.
package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/handler/http/auth"
	"technews/internal/handler/http/respond"
	newsUC "technews/internal/usecase/newsletter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// subscriberEventsTotal counts subscription lifecycle events.
var subscriberEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "newsletter_subscriber_events_total",
		Help: "Total newsletter subscribe/unsubscribe events",
	},
	[]string{"event"}, // event: subscribed | unsubscribed
)

type emailRequest struct {
	Email string `json:"email"`
}

type subscriberDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(s *entity.Subscriber) subscriberDTO {
	return subscriberDTO{
		ID:        s.ID,
		Email:     s.Email,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

type SubscribeHandler struct{ Svc *newsUC.Service }

func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.Svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	subscriberEventsTotal.WithLabelValues("subscribed").Inc()
	respond.JSON(w, http.StatusCreated, toDTO(sub))
}

type UnsubscribeHandler struct{ Svc *newsUC.Service }

func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Unsubscribe(r.Context(), req.Email); err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	subscriberEventsTotal.WithLabelValues("unsubscribed").Inc()
	respond.JSON(w, http.StatusOK, map[string]string{"message": "unsubscribed"})
}

type ListHandler struct{ Svc *newsUC.Service }

// ServeHTTP lists all subscribers, active and inactive. Admin only.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFromContext(r.Context())

	subs, err := h.Svc.ListSubscribers(r.Context(), actor)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	out := make([]subscriberDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, toDTO(s))
	}
	respond.JSON(w, http.StatusOK, out)
}

func statusForError(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, newsUC.ErrSubscriberNotFound):
		return http.StatusNotFound
	case errors.Is(err, newsUC.ErrAlreadySubscribed):
		return http.StatusBadRequest
	case errors.Is(err, newsUC.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Register registers the newsletter routes with the given mux.
// Subscribe and unsubscribe are public; the subscriber list requires
// authentication.
func Register(mux *http.ServeMux, svc *newsUC.Service) {
	mux.Handle("POST /newsletter/subscribe", SubscribeHandler{svc})
	mux.Handle("POST /newsletter/unsubscribe", UnsubscribeHandler{svc})
	mux.Handle("GET /newsletter/subscribers", auth.Require(ListHandler{svc}))
}
