// Package notify sends user-facing notifications.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Notifier delivers the welcome message to a newly registered user.
type Notifier interface {
	SendWelcome(ctx context.Context, email, username string) error
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends mail through an authenticated SMTP relay. A new
// connection is opened for every message.
type SMTPNotifier struct {
	cfg SMTPConfig
	log zerolog.Logger
}

// NewSMTPNotifier creates an SMTPNotifier.
func NewSMTPNotifier(cfg SMTPConfig, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

// WelcomeSubject is the subject line of the welcome message.
const WelcomeSubject = "🎉 Welcome to Polarix!"

// WelcomeBody renders the plain-text welcome message for username.
func WelcomeBody(username string) string {
	return fmt.Sprintf("Hi %s,\n\nThank you for registering at Polarix. We're thrilled to have you on board! 🚀\n\nBest Regards,\nThe Polarix Team", username)
}

func (n *SMTPNotifier) SendWelcome(ctx context.Context, email, username string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("SendWelcome: from address: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("SendWelcome: to address: %w", err)
	}
	msg.Subject(WelcomeSubject)
	msg.SetBodyString(mail.TypeTextPlain, WelcomeBody(username))

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("SendWelcome: creating client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("SendWelcome: sending: %w", err)
	}

	n.log.Info().Str("to", email).Msg("Welcome email sent")
	return nil
}

// LogNotifier only logs. It is used when SMTP is not configured and
// always reports failure so callers record the email as not sent.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// ErrDisabled is returned by LogNotifier.
var ErrDisabled = errors.New("mail delivery is not configured")

func (n *LogNotifier) SendWelcome(ctx context.Context, email, username string) error {
	n.log.Warn().Str("to", email).Str("username", username).Msg("Mail disabled, welcome email not sent")
	return ErrDisabled
}

var (
	_ Notifier = (*SMTPNotifier)(nil)
	_ Notifier = (*LogNotifier)(nil)
)
