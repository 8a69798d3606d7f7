package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dvloznov/polarix/internal/config"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/export"
	infraMongo "github.com/dvloznov/polarix/internal/infra/mongo"
	"github.com/dvloznov/polarix/internal/jobs"
	"github.com/dvloznov/polarix/internal/jobs/inmemory"
	"github.com/dvloznov/polarix/internal/logger"
)

var (
	workers = flag.Int("workers", 4, "Number of concurrent exports")
	userID  = flag.String("user", "", "Export only this user id")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if cfg.MongoURI == "" {
		log.Fatal().Msg("MONGO_URI is required")
	}

	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := infraMongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer st.Close(context.Background())

	sink, closeSink, err := export.OpenSink(ctx, cfg.TemplateDir, cfg.TemplateBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open template sink")
	}
	defer closeSink()

	var users []*domain.User
	if *userID != "" {
		u, err := st.Users().GetUserByID(ctx, *userID)
		if err != nil {
			log.Fatal().Err(err).Str("user_id", *userID).Msg("Failed to load user")
		}
		users = []*domain.User{u}
	} else {
		users, err = st.Users().ListUsers(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list users")
		}
	}

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(len(users)+1, *workers, jobStore, log)

	var wg sync.WaitGroup
	exportHandler := jobs.NewExportHandler(export.NewExporter(sink, log))
	handler := func(ctx context.Context, job jobs.Job) error {
		defer wg.Done()
		return exportHandler(ctx, job)
	}

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	scheduler := jobs.NewScheduler(jobQueue)
	for _, u := range users {
		wg.Add(1)
		if err := scheduler.ScheduleExport(ctx, u.ID); err != nil {
			wg.Done()
			log.Error().Err(err).Str("user_id", u.ID).Msg("Failed to schedule export")
		}
	}

	log.Info().Int("users", len(users)).Msg("Exporting templates")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn().Msg("Interrupted, waiting for in-flight exports")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	failed, err := jobStore.ListJobs(shutdownCtx, jobs.JobFilter{Status: jobs.JobStatusFailed})
	if err != nil {
		log.Error().Err(err).Msg("Failed to read job results")
	}
	completed, _ := jobStore.ListJobs(shutdownCtx, jobs.JobFilter{Status: jobs.JobStatusCompleted})

	log.Info().Int("completed", len(completed)).Int("failed", len(failed)).Msg("Template export finished")
	if len(failed) > 0 {
		os.Exit(1)
	}
}
