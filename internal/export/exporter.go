package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Exporter writes a user's template to a sink unless one is already there.
type Exporter struct {
	sink Sink
	log  zerolog.Logger
}

// NewExporter creates an Exporter.
func NewExporter(sink Sink, log zerolog.Logger) *Exporter {
	return &Exporter{sink: sink, log: log}
}

// Export stores the template for userID. It reports whether a new
// template was written; an existing one is left untouched.
func (e *Exporter) Export(ctx context.Context, userID string) (bool, error) {
	exists, err := e.sink.Exists(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("Export: checking sink: %w", err)
	}
	if exists {
		e.log.Debug().Str("user_id", userID).Msg("Template already exists")
		return false, nil
	}

	data, err := BuildTemplate()
	if err != nil {
		return false, err
	}

	if err := e.sink.Create(ctx, userID, data); err != nil {
		if errors.Is(err, ErrExists) {
			return false, nil
		}
		return false, fmt.Errorf("Export: storing template: %w", err)
	}

	e.log.Info().Str("user_id", userID).Msg("Template created")
	return true, nil
}
