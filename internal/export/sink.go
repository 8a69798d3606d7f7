package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned by Sink.Create when the user's template is already stored.
var ErrExists = errors.New("template already exists")

// Sink stores templates keyed by user id. Create never overwrites.
type Sink interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, userID string, data []byte) error
}

// LocalSink stores templates as <dir>/<userID>.xlsx.
type LocalSink struct {
	dir string
}

// NewLocalSink returns a sink writing into dir, creating it if needed.
func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewLocalSink: creating %s: %w", dir, err)
	}
	return &LocalSink{dir: dir}, nil
}

// Path returns the file path of the user's template.
func (s *LocalSink) Path(userID string) string {
	return filepath.Join(s.dir, userID+".xlsx")
}

func (s *LocalSink) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := os.Stat(s.Path(userID))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("LocalSink.Exists: %w", err)
}

func (s *LocalSink) Create(ctx context.Context, userID string, data []byte) error {
	f, err := os.OpenFile(s.Path(userID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return ErrExists
	}
	if err != nil {
		return fmt.Errorf("LocalSink.Create: open: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("LocalSink.Create: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("LocalSink.Create: close: %w", err)
	}
	return nil
}

// OpenSink returns the GCS sink when bucket is set and a LocalSink on dir
// otherwise. The returned close function releases the sink's client.
func OpenSink(ctx context.Context, dir, bucket string) (Sink, func() error, error) {
	if bucket != "" {
		sink, err := NewGCSSink(ctx, bucket)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil
	}

	sink, err := NewLocalSink(dir)
	if err != nil {
		return nil, nil, err
	}
	return sink, func() error { return nil }, nil
}
