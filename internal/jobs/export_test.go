package jobs

import (
	"context"
	"errors"
	"testing"
)

type fakeExporter struct {
	err     error
	userIDs []string
}

func (f *fakeExporter) Export(ctx context.Context, userID string) (bool, error) {
	f.userIDs = append(f.userIDs, userID)
	return f.err == nil, f.err
}

type fakePublisher struct {
	published []*ExportTemplateJob
}

func (f *fakePublisher) PublishExportTemplate(ctx context.Context, job *ExportTemplateJob) error {
	f.published = append(f.published, job)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestExportHandler(t *testing.T) {
	exp := &fakeExporter{}
	handler := NewExportHandler(exp)

	if err := handler(context.Background(), &ExportTemplateJob{UserID: "u1"}); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(exp.userIDs) != 1 || exp.userIDs[0] != "u1" {
		t.Errorf("exported %v, want [u1]", exp.userIDs)
	}

	exp.err = errors.New("disk full")
	if err := handler(context.Background(), &ExportTemplateJob{UserID: "u2"}); !errors.Is(err, exp.err) {
		t.Errorf("handler() error = %v, want wrapping %v", err, exp.err)
	}
}

func TestScheduler(t *testing.T) {
	pub := &fakePublisher{}
	if err := NewScheduler(pub).ScheduleExport(context.Background(), "u1"); err != nil {
		t.Fatalf("ScheduleExport failed: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].UserID != "u1" {
		t.Errorf("published %+v", pub.published)
	}
}
