package jobs

import (
	"context"
	"fmt"
)

// TemplateExporter writes one user's template.
type TemplateExporter interface {
	Export(ctx context.Context, userID string) (bool, error)
}

// NewExportHandler returns a JobHandler that runs template export jobs
// through exp.
func NewExportHandler(exp TemplateExporter) JobHandler {
	return func(ctx context.Context, job Job) error {
		j, ok := job.(*ExportTemplateJob)
		if !ok {
			return fmt.Errorf("unexpected job type %s", job.GetType())
		}
		if _, err := exp.Export(ctx, j.UserID); err != nil {
			return fmt.Errorf("export template for %s: %w", j.UserID, err)
		}
		return nil
	}
}

// Scheduler turns export requests into published jobs.
type Scheduler struct {
	pub Publisher
}

// NewScheduler creates a Scheduler publishing to pub.
func NewScheduler(pub Publisher) *Scheduler {
	return &Scheduler{pub: pub}
}

// ScheduleExport enqueues a template export for userID.
func (s *Scheduler) ScheduleExport(ctx context.Context, userID string) error {
	return s.pub.PublishExportTemplate(ctx, &ExportTemplateJob{UserID: userID})
}
