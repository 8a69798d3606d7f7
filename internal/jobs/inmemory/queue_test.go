package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/jobs"
)

// waitForStatus polls the store until the job reaches want or the deadline passes.
func waitForStatus(t *testing.T, store *Store, jobID string, want jobs.JobStatus) *jobs.ExportTemplateJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.GetJob(context.Background(), jobID)
		if err == nil && job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not reach status %s", jobID, want)
	return nil
}

func TestQueue_ProcessesJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	q := NewQueue(10, 2, store, zerolog.Nop())

	var mu sync.Mutex
	var seen []string
	handler := func(ctx context.Context, job jobs.Job) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, job.(*jobs.ExportTemplateJob).UserID)
		return nil
	}
	if err := q.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	job := &jobs.ExportTemplateJob{UserID: "u1"}
	if err := q.PublishExportTemplate(ctx, job); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if job.JobID == "" {
		t.Error("expected a generated job id")
	}

	done := waitForStatus(t, store, job.JobID, jobs.JobStatusCompleted)
	if done.StartedAt == nil || done.CompletedAt == nil {
		t.Errorf("expected timestamps, got %+v", done)
	}

	_ = q.Stop(context.Background())
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "u1" {
		t.Errorf("handler saw %v, want [u1]", seen)
	}
}

func TestQueue_FailedJobIsNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	q := NewQueue(10, 1, store, zerolog.Nop())

	var mu sync.Mutex
	calls := 0
	_ = q.Start(ctx, func(ctx context.Context, job jobs.Job) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return errors.New("sink unavailable")
	})

	job := &jobs.ExportTemplateJob{UserID: "u1"}
	_ = q.PublishExportTemplate(ctx, job)

	failed := waitForStatus(t, store, job.JobID, jobs.JobStatusFailed)
	if failed.Error != "sink unavailable" {
		t.Errorf("Error = %q", failed.Error)
	}

	time.Sleep(50 * time.Millisecond)
	_ = q.Stop(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestQueue_PublishAfterStop(t *testing.T) {
	q := NewQueue(1, 1, nil, zerolog.Nop())
	if err := q.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if err := q.PublishExportTemplate(context.Background(), &jobs.ExportTemplateJob{UserID: "u1"}); err == nil {
		t.Error("expected publish on a stopped queue to fail")
	}
	if err := q.Stop(context.Background()); err != nil {
		t.Errorf("second Stop() error = %v, want nil", err)
	}
}

func TestStore_ListJobsFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Now()
	_ = s.SaveJob(ctx, &jobs.ExportTemplateJob{JobID: "j1", UserID: "u1", Status: jobs.JobStatusCompleted, CreatedAt: base})
	_ = s.SaveJob(ctx, &jobs.ExportTemplateJob{JobID: "j2", UserID: "u2", Status: jobs.JobStatusFailed, CreatedAt: base.Add(time.Second)})
	_ = s.SaveJob(ctx, &jobs.ExportTemplateJob{JobID: "j3", UserID: "u1", Status: jobs.JobStatusFailed, CreatedAt: base.Add(2 * time.Second)})

	tests := []struct {
		name   string
		filter jobs.JobFilter
		want   []string
	}{
		{"all", jobs.JobFilter{}, []string{"j1", "j2", "j3"}},
		{"by user", jobs.JobFilter{UserID: "u1"}, []string{"j1", "j3"}},
		{"by status", jobs.JobFilter{Status: jobs.JobStatusFailed}, []string{"j2", "j3"}},
		{"limit", jobs.JobFilter{Limit: 1}, []string{"j1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListJobs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListJobs failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].JobID != id {
					t.Errorf("got[%d] = %s, want %s", i, got[i].JobID, id)
				}
			}
		})
	}
}
