package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"technews/internal/domain/entity"

	"github.com/wneessen/go-mail"
)

// SMTPMailer delivers email through an SMTP relay. A token bucket keeps
// large fan-outs under the relay's sending limits.
type SMTPMailer struct {
	client      *mail.Client
	config      Config
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// NewSMTPMailer creates an SMTP mailer from the configuration.
//
// The rate limiter defaults to 5 messages/second with a burst of 10,
// which stays inside common relay limits while keeping a full fan-out
// reasonably fast.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client:      client,
		config:      cfg,
		rateLimiter: NewRateLimiter(5.0, 10),
		logger:      slog.Default(),
	}, nil
}

// Send delivers the new-article notification to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, recipient string, article *entity.Article) error {
	body, err := renderArticle(article, m.config.FrontendURL)
	if err != nil {
		return err
	}
	return m.deliver(ctx, recipient, articleSubject(article), body)
}

// SendWelcome delivers the onboarding email for a new account.
func (m *SMTPMailer) SendWelcome(ctx context.Context, user *entity.User) error {
	body, err := renderWelcome(user, m.config.FrontendURL)
	if err != nil {
		return err
	}
	return m.deliver(ctx, user.Email, "Your account is ready", body)
}

// SendPasswordReset delivers the password recovery email.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, user *entity.User, token string) error {
	body, err := renderReset(user, token, m.config.FrontendURL)
	if err != nil {
		return err
	}
	return m.deliver(ctx, user.Email, "Password reset request", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, recipient, subject, htmlBody string) error {
	if err := m.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.config.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	start := time.Now()
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.logger.Debug("email delivered",
		slog.String("subject", subject),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
