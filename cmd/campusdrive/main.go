package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/campusdrive/campusdrive/internal/alumni"
	"github.com/campusdrive/campusdrive/internal/announcements"
	"github.com/campusdrive/campusdrive/internal/app"
	"github.com/campusdrive/campusdrive/internal/auth"
	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/drives"
	"github.com/campusdrive/campusdrive/internal/interests"
	"github.com/campusdrive/campusdrive/internal/observability"
	"github.com/campusdrive/campusdrive/internal/platform/blob"
	"github.com/campusdrive/campusdrive/internal/platform/cache"
	"github.com/campusdrive/campusdrive/internal/platform/db"
	"github.com/campusdrive/campusdrive/internal/shared"
	"github.com/campusdrive/campusdrive/internal/users"
	"github.com/campusdrive/campusdrive/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "campusdrive_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	store, uploadsDir, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Error("init blob store", slog.Any("error", err))
		os.Exit(1)
	}

	auditLogger := shared.NewAuditLogger(pool)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	drivesRepo := drives.NewRepository(pool)
	drivesService := drives.NewService(drivesRepo, auditLogger, logger)
	drivesHandler := drives.NewHandler(logger, drivesService)

	annoRepo := announcements.NewRepository(pool)
	annoService := announcements.NewService(annoRepo, auditLogger, logger)
	annoHandler := announcements.NewHandler(logger, annoService)

	alumniRepo := alumni.NewRepository(pool)
	alumniService := alumni.NewService(alumniRepo, store, auditLogger, logger)
	alumniHandler := alumni.NewHandler(logger, alumniService, cfg.MaxUploadMB<<20)

	interestsRepo := interests.NewRepository(pool)
	interestsService := interests.NewService(interestsRepo, logger)
	interestsHandler := interests.NewHandler(logger, interestsService)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, auditLogger, logger)
	usersHandler := users.NewHandler(logger, usersService)

	dispatcher := dispatch.New(logger)
	authHandler.Register(dispatcher)
	drivesHandler.Register(dispatcher)
	annoHandler.Register(dispatcher)
	alumniHandler.Register(dispatcher)
	interestsHandler.Register(dispatcher)
	usersHandler.Register(dispatcher)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		Dispatcher:     dispatcher,
		JobHandler:     jobHandler,
		Metrics:        metrics,
		UploadsDir:     uploadsDir,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// newBlobStore builds the configured photo store. The second return is
// the directory to serve under /uploads, empty for the s3 driver.
func newBlobStore(ctx context.Context, cfg *app.Config) (blob.Store, string, error) {
	if cfg.BlobDriver == "s3" {
		store, err := blob.NewMinioStore(ctx, blob.MinioConfig{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		return store, "", err
	}
	store, err := blob.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}
