package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-exercisetracker/config"
	controller "golang-exercisetracker/controllers"
	"golang-exercisetracker/database"
	"golang-exercisetracker/helpers"
	"golang-exercisetracker/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	logger.Info("store ready", "store", cfg.Store)

	var archiver controller.LogArchiver
	if cfg.Archive.Bucket != "" {
		s3Archiver, err := helpers.NewS3Archiver(ctx, cfg.Archive)
		if err != nil {
			logger.Error("failed to configure log archive", "error", err)
			os.Exit(1)
		}
		archiver = s3Archiver
		logger.Info("log archive enabled", "bucket", cfg.Archive.Bucket)
	}

	router := routes.NewRouter(routes.Options{
		Store:              store,
		Archiver:           archiver,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		TrustedProxies:     cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store close", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (database.Store, error) {
	if cfg.Store == config.StoreMemory {
		return database.NewMemoryStore(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := database.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	store := database.NewMongoStore(client, cfg.MongoDatabase)
	if err := store.EnsureIndexes(connectCtx); err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}
	return store, nil
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
