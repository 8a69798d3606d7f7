package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info")

	log.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"service":"polarix"`) {
		t.Errorf("Expected service field, got: %s", output)
	}
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "warn")

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got: %s", buf.String())
	}

	log.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected warn output, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf, "info")
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx, zerolog.Nop())
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	buf := &bytes.Buffer{}
	fallback := NewWithWriter(buf, "info")

	log := FromContext(context.Background(), fallback)
	log.Info().Msg("from fallback")

	if !strings.Contains(buf.String(), "from fallback") {
		t.Errorf("Expected fallback logger to be used, got: %s", buf.String())
	}
}

func TestWithUser(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithUser(NewWithWriter(buf, "info"), "u-123")

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), `"user_id":"u-123"`) {
		t.Errorf("Expected output to contain user_id field, got: %s", buf.String())
	}
}
