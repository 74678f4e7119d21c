// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"catering-admin/config"
	"catering-admin/logger"
	"catering-admin/repository"
	"catering-admin/router"
	"catering-admin/services"
	"catering-admin/storage"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Set Gin to release mode for production
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, cleanup, err := buildServer(context.Background(), cfg)
	if err != nil {
		logger.Error.Fatalf("Failed to start: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info.Printf("Listening on %s (%s)", srv.Addr, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error.Printf("Graceful shutdown failed: %v", err)
	}
}

// setupLogging applies LOG_LEVEL when set; otherwise the level follows APP_ENV.
func setupLogging(cfg *config.Config) error {
	if err := logger.InitLogger(logger.Options{
		Level:      cfg.Log.Level,
		Production: cfg.IsProduction(),
		File:       cfg.Log.File,
	}); err != nil {
		return err
	}
	if cfg.Log.Level == "" {
		logger.SetLogLevel(cfg.App.Env)
	}
	return nil
}

// buildServer opens the database, prepares it, picks the storage and
// metrics backends and returns the HTTP server. cleanup closes the database.
func buildServer(ctx context.Context, cfg *config.Config) (*http.Server, func(), error) {
	db, err := repository.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := repository.Close(db); err != nil {
			logger.Warn.Printf("Closing database: %v", err)
		}
	}

	if err := prepareDatabase(ctx, db, cfg.Seed); err != nil {
		cleanup()
		return nil, nil, err
	}

	store, err := newBlobStore(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	metrics, err := newMetrics(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	engine, err := router.New(router.Deps{
		Config:    cfg,
		Reviews:   repository.NewReviewRepository(db),
		Inquiries: repository.NewInquiryRepository(db),
		Menu:      repository.NewMenuRepository(db),
		Admins:    repository.NewAdminRepository(db),
		Store:     store,
		Metrics:   metrics,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var handler http.Handler = engine
	if cfg.Tracing.Enabled {
		handler = xray.Handler(xray.NewFixedSegmentNamer(cfg.Tracing.ServiceName), engine)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadTimeout:       cfg.App.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.App.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return srv, cleanup, nil
}

// prepareDatabase migrates the schema, folds legacy menu rows into the
// current table and seeds the first admin.
func prepareDatabase(ctx context.Context, db *gorm.DB, seed config.SeedConfig) error {
	if err := repository.Migrate(db); err != nil {
		return err
	}
	if _, err := repository.MigrateLegacyMenu(ctx, db); err != nil {
		return err
	}
	if _, err := repository.SeedAdmin(ctx, db, seed); err != nil {
		return err
	}
	return nil
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		var opts []storage.S3Option
		if cfg.Tracing.Enabled {
			opts = append(opts, storage.WithTracing())
		}
		return storage.NewS3Storage(cfg.Storage, opts...)
	case "memory", "":
		logger.Warn.Println("Using in-memory blob storage; uploads are lost on restart")
		return storage.NewMemoryStorage(cfg.App.BaseURL), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

func newMetrics(cfg *config.Config) (services.MetricsPublisher, error) {
	if !cfg.Metrics.Enabled {
		return services.NopPublisher{}, nil
	}
	sess, err := session.NewSession(aws.NewConfig().WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session for metrics: %w", err)
	}
	return services.NewCloudWatchPublisher(sess, cfg.Metrics.Namespace), nil
}
