package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api"
	"github.com/dvloznov/polarix/internal/auth"
	"github.com/dvloznov/polarix/internal/bootstrap"
	"github.com/dvloznov/polarix/internal/config"
	"github.com/dvloznov/polarix/internal/export"
	infraMongo "github.com/dvloznov/polarix/internal/infra/mongo"
	"github.com/dvloznov/polarix/internal/jobs"
	"github.com/dvloznov/polarix/internal/jobs/inmemory"
	"github.com/dvloznov/polarix/internal/logger"
	"github.com/dvloznov/polarix/internal/notify"
	"github.com/dvloznov/polarix/internal/store"
	memstore "github.com/dvloznov/polarix/internal/store/inmemory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Initialize store
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}

	// Initialize template export
	sink, closeSink, err := export.OpenSink(ctx, cfg.TemplateDir, cfg.TemplateBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open template sink")
	}
	defer closeSink()

	exporter := export.NewExporter(sink, log)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, 2, jobStore, log)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := jobQueue.Start(workerCtx, jobs.NewExportHandler(exporter)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job workers")
	}
	scheduler := jobs.NewScheduler(jobQueue)

	// Mail and sign-in
	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.MailEnabled() {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}, log)
	} else {
		log.Warn().Msg("No SMTP host configured - welcome emails will be skipped")
	}
	if cfg.GoogleClientID == "" {
		log.Warn().Msg("No Google client id configured - Google sign-in will be rejected")
	}

	router := api.NewRouter(api.Dependencies{
		Store:        st,
		Tokens:       auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Google:       auth.NewIDTokenVerifier(cfg.GoogleClientID),
		Bootstrapper: bootstrap.New(st, notifier, scheduler, log),
		CORSOrigins:  cfg.CORSOrigins,
		Log:          log,
	})

	// Templates for users created before this process started
	go scheduleExistingUsers(workerCtx, st, scheduler, log)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.StoreBackend).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}
	cancelWorker()

	if err := st.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}

	log.Info().Msg("Server exited")
}

// openStore connects the configured backend. The Mongo backend gets its
// unique indexes ensured before the server accepts traffic.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	if cfg.StoreBackend == config.BackendMemory {
		log.Warn().Msg("Using in-memory store - data is lost on restart")
		return memstore.NewStore(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	st, err := infraMongo.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if err := infraMongo.EnsureIndexes(connectCtx, st.Database()); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")
	return st, nil
}

func scheduleExistingUsers(ctx context.Context, st store.Store, scheduler *jobs.Scheduler, log zerolog.Logger) {
	users, err := st.Users().ListUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users for template export")
		return
	}

	for _, u := range users {
		if err := scheduler.ScheduleExport(ctx, u.ID); err != nil {
			log.Warn().Err(err).Str("user_id", u.ID).Msg("Failed to schedule template export")
			return
		}
	}
	log.Info().Int("users", len(users)).Msg("Scheduled template exports")
}
