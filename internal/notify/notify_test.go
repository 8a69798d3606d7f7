package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWelcomeBody(t *testing.T) {
	body := WelcomeBody("alice")
	if !strings.HasPrefix(body, "Hi alice,") {
		t.Errorf("body does not greet the user: %q", body)
	}
	if !strings.Contains(body, "Thank you for registering at Polarix") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestLogNotifier(t *testing.T) {
	buf := &bytes.Buffer{}
	n := NewLogNotifier(zerolog.New(buf))

	err := n.SendWelcome(context.Background(), "a@x.io", "alice")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("SendWelcome() error = %v, want ErrDisabled", err)
	}
	if !strings.Contains(buf.String(), "a@x.io") {
		t.Errorf("expected recipient in log, got %s", buf.String())
	}
}

func TestSMTPNotifier_InvalidSender(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 587, From: "not an address"}, zerolog.Nop())

	if err := n.SendWelcome(context.Background(), "a@x.io", "alice"); err == nil {
		t.Error("expected an error for an invalid sender address")
	}
}
