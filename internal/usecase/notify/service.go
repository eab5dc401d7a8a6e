// Package notify implements the newsletter fan-out procedure: when an
// article transitions to published, every active subscriber is sent a
// notification email. Delivery is best-effort with per-recipient failure
// isolation; a failed send is reported and logged but never aborts the
// remaining sends and never surfaces to the caller that triggered the
// publish.
package notify

import (
	"context"
	"log/slog"
	"time"

	"technews/internal/domain/entity"
	"technews/internal/repository"
)

// defaultSendTimeout bounds a single send so an unresponsive transport
// cannot stall the publishing request indefinitely.
const defaultSendTimeout = 10 * time.Second

// Sender renders and delivers a notification about an article to a single
// recipient address. Implementations must respect context cancellation and
// timeout.
type Sender interface {
	Send(ctx context.Context, recipient string, article *entity.Article) error
}

// FailureReporter receives every per-recipient delivery failure. It exists
// as an explicit seam so tests and monitoring can observe failure count and
// identity without capturing log output.
type FailureReporter interface {
	DeliveryFailed(article *entity.Article, recipient string, err error)
}

// FailureReporterFunc adapts a function to the FailureReporter interface.
type FailureReporterFunc func(article *entity.Article, recipient string, err error)

func (f FailureReporterFunc) DeliveryFailed(article *entity.Article, recipient string, err error) {
	f(article, recipient, err)
}

// Result summarizes one fan-out run.
type Result struct {
	Attempted int // Number of sends attempted (== active subscribers)
	Failed    int // Number of sends that returned an error
}

// Service orchestrates the fan-out. It is safe for concurrent use as long
// as the injected repository and sender are.
type Service struct {
	subs        repository.SubscriberRepository
	sender      Sender
	reporter    FailureReporter
	logger      *slog.Logger
	sendTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithFailureReporter installs a reporter invoked once per failed send.
func WithFailureReporter(r FailureReporter) Option {
	return func(s *Service) { s.reporter = r }
}

// WithSendTimeout overrides the per-recipient send timeout.
func WithSendTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sendTimeout = d
		}
	}
}

// WithLogger overrides the logger used for fan-out progress and failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a fan-out service reading recipients from subs and
// delivering through sender.
func NewService(subs repository.SubscriberRepository, sender Sender, opts ...Option) *Service {
	s := &Service{
		subs:        subs,
		sender:      sender,
		logger:      slog.Default(),
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ArticlePublished sends a notification about the article to every active
// subscriber, sequentially, and returns how many sends were attempted and
// how many failed.
//
// The loop runs to completion once started: the parent context's
// cancellation is deliberately not propagated (the triggering request has
// already committed the article), only per-send timeouts apply. Errors are
// swallowed at per-recipient granularity; the caller's operation outcome
// must not depend on this result.
func (s *Service) ArticlePublished(ctx context.Context, article *entity.Article) Result {
	if article == nil {
		s.logger.Warn("fan-out skipped: nil article")
		return Result{}
	}

	// Keep request-scoped values for logging but detach from cancellation.
	base := context.WithoutCancel(ctx)

	subscribers, err := s.subs.ListActive(base)
	if err != nil {
		// Subscriber fetch failures are swallowed like send failures:
		// the publish itself has already succeeded.
		s.logger.Error("fan-out aborted: listing active subscribers failed",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
		return Result{}
	}

	recordFanout(len(subscribers))

	if len(subscribers) == 0 {
		s.logger.Debug("fan-out skipped: no active subscribers",
			slog.Int64("article_id", article.ID))
		return Result{}
	}

	s.logger.Info("dispatching newsletter fan-out",
		slog.Int64("article_id", article.ID),
		slog.String("title", article.Title),
		slog.Int("subscribers", len(subscribers)))

	res := Result{}
	for _, sub := range subscribers {
		res.Attempted++

		sendCtx, cancel := context.WithTimeout(base, s.sendTimeout)
		start := time.Now()
		err := s.sender.Send(sendCtx, sub.Email, article)
		duration := time.Since(start)
		cancel()

		if err != nil {
			res.Failed++
			recordSend("failure", duration)
			s.logger.Warn("newsletter send failed",
				slog.Int64("article_id", article.ID),
				slog.String("recipient", sub.Email),
				slog.Duration("send_duration", duration),
				slog.Any("error", err))
			if s.reporter != nil {
				s.reporter.DeliveryFailed(article, sub.Email, err)
			}
			continue
		}

		recordSend("success", duration)
	}

	s.logger.Info("newsletter fan-out complete",
		slog.Int64("article_id", article.ID),
		slog.Int("attempted", res.Attempted),
		slog.Int("failed", res.Failed))

	return res
}
