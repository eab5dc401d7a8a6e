// Package mailer provides abstraction for sending transactional email.
// It defines the Mailer interface which allows different delivery
// mechanisms (SMTP, no-op for disabled environments) to be used
// interchangeably through dependency injection.
package mailer

import (
	"context"
	"time"

	"technews/internal/domain/entity"

	"technews/pkg/config"
)

// Mailer is the full delivery surface the application depends on:
// newsletter fan-out, account onboarding and password recovery.
type Mailer interface {
	// Send delivers the new-article notification to a single recipient.
	Send(ctx context.Context, recipient string, article *entity.Article) error

	// SendWelcome delivers the onboarding email for a new account.
	SendWelcome(ctx context.Context, user *entity.User) error

	// SendPasswordReset delivers the password recovery email carrying
	// the one-time token.
	SendPasswordReset(ctx context.Context, user *entity.User, token string) error
}

// Config contains SMTP delivery configuration.
type Config struct {
	// Host is the SMTP server hostname. An empty host disables delivery.
	Host string

	// Port is the SMTP server port.
	Port int

	// Username and Password authenticate against the SMTP server.
	Username string
	Password string

	// From is the sender address on outgoing mail.
	From string

	// FrontendURL is the public site base URL used in email links.
	FrontendURL string

	// Timeout bounds a single delivery attempt.
	Timeout time.Duration
}

// ConfigFromEnv reads SMTP configuration from environment variables.
func ConfigFromEnv() Config {
	return Config{
		Host:        config.GetEnvString("SMTP_HOST", ""),
		Port:        config.GetEnvInt("SMTP_PORT", 587),
		Username:    config.GetEnvString("SMTP_USER", ""),
		Password:    config.GetEnvString("SMTP_PASSWORD", ""),
		From:        config.GetEnvString("MAIL_FROM", "newsletter@technews.local"),
		FrontendURL: config.GetEnvString("FRONTEND_URL", "http://localhost:3000"),
		Timeout:     config.GetEnvDuration("SMTP_TIMEOUT", 10*time.Second),
	}
}

// Enabled reports whether delivery is configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}
