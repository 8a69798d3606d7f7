package export

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCSSink stores templates as gs://<bucket>/templates/<userID>.xlsx.
// It assumes Application Default Credentials are configured.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSink creates a storage client for bucket. Call Close when done.
func NewGCSSink(ctx context.Context, bucket string) (*GCSSink, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGCSSink: create storage client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket, prefix: "templates"}, nil
}

// Close closes the storage client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}

// ObjectName returns the object path of the user's template.
func (s *GCSSink) ObjectName(userID string) string {
	return path.Join(s.prefix, userID+".xlsx")
}

func (s *GCSSink) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(s.ObjectName(userID)).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("GCSSink.Exists: %w", err)
	}
	return true, nil
}

// Create uploads data under a does-not-exist precondition, so a template
// written concurrently by another process is never replaced.
func (s *GCSSink) Create(ctx context.Context, userID string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	obj := s.client.Bucket(s.bucket).Object(s.ObjectName(userID)).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	w.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("GCSSink.Create: write: %w", err)
	}
	if err := w.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return ErrExists
		}
		return fmt.Errorf("GCSSink.Create: finalize upload: %w", err)
	}
	return nil
}

var (
	_ Sink = (*LocalSink)(nil)
	_ Sink = (*GCSSink)(nil)
)
