package mailer

import (
	"context"

	"technews/internal/domain/entity"
)

// NoOpMailer is a no-operation implementation of the Mailer interface.
// It is used when SMTP is not configured to avoid nil checks in the code.
// This follows the Null Object pattern.
type NoOpMailer struct{}

// NewNoOpMailer creates a new NoOpMailer instance.
func NewNoOpMailer() *NoOpMailer {
	return &NoOpMailer{}
}

// Send does nothing and returns nil immediately.
func (n *NoOpMailer) Send(ctx context.Context, recipient string, article *entity.Article) error {
	return nil
}

// SendWelcome does nothing and returns nil immediately.
func (n *NoOpMailer) SendWelcome(ctx context.Context, user *entity.User) error {
	return nil
}

// SendPasswordReset does nothing and returns nil immediately.
func (n *NoOpMailer) SendPasswordReset(ctx context.Context, user *entity.User, token string) error {
	return nil
}

var _ Mailer = (*NoOpMailer)(nil)
var _ Mailer = (*SMTPMailer)(nil)
