// Package mailer delivers the account lifecycle emails. Delivery is a
// best-effort collaborator: callers log failures instead of failing the
// primary operation, except where an operation's whole point is the email.
package mailer

import (
	"context"

	"github.com/KshitijChavan-Stack/authflow/internal/logger"
)

// Sender delivers outbound account emails.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, firstName, token string) error
	SendWelcomeEmail(ctx context.Context, to, firstName string) error
	SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error
}

// LogSender logs instead of sending. Used in development and tests.
type LogSender struct {
	log *logger.Logger
}

var _ Sender = (*LogSender)(nil)

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendVerificationEmail(_ context.Context, to, _ string, token string) error {
	s.log.Info("verification email (not sent)", "to", to, "token", token)

	return nil
}

func (s *LogSender) SendWelcomeEmail(_ context.Context, to, _ string) error {
	s.log.Info("welcome email (not sent)", "to", to)

	return nil
}

func (s *LogSender) SendPasswordResetEmail(_ context.Context, to, _ string, token string) error {
	s.log.Info("password reset email (not sent)", "to", to, "token", token)

	return nil
}
