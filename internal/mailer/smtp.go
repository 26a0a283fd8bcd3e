package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/KshitijChavan-Stack/authflow/config"
)

// SMTPSender delivers email over SMTP.
type SMTPSender struct {
	client  *mail.Client
	from    string
	baseURL string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender builds a sender from SMTP config. baseURL is the frontend
// origin the verification and reset links point at.
func NewSMTPSender(cfg config.SMTP, baseURL string) (*SMTPSender, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From, baseURL: baseURL}, nil
}

func (s *SMTPSender) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}

	if err := msg.To(to); err != nil {
		return err
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return s.client.DialAndSendWithContext(ctx, msg)
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Thanks for signing up. Please verify your email address by clicking the link below:</p>
<p><a href=%q>Verify Email</a></p>
<p>This link expires in 24 hours. If you did not create an account, you can ignore this email.</p>`,
		firstName, link,
	)

	return s.send(ctx, to, "Verify your email address", body)
}

func (s *SMTPSender) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your email has been verified and your account is ready to use. Welcome aboard!</p>`,
		firstName,
	)

	return s.send(ctx, to, "Welcome!", body)
}

func (s *SMTPSender) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href=%q>Reset Password</a></p>
<p>This link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>`,
		firstName, link,
	)

	return s.send(ctx, to, "Reset your password", body)
}
