package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"appliance-service-backend/config"
	"appliance-service-backend/internal/api"
	"appliance-service-backend/internal/auth"
	"appliance-service-backend/internal/billing"
	"appliance-service-backend/internal/db"
	"appliance-service-backend/internal/invoice"
	"appliance-service-backend/internal/mw"
	"appliance-service-backend/internal/notification"
	"appliance-service-backend/internal/store"
)

func main() {
	logger := logrus.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	configureLogger(logger, cfg.Log)
	logger.WithField("path", configPath).Info("configuration loaded")

	if cfg.Auth.JWTSecret == "" && cfg.Auth.ProviderURL == "" {
		logger.Fatal("auth.jwt_secret or auth.provider_url must be configured")
	}

	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, logger)

	opts := api.Options{
		Calculator: billing.NewCalculator(cfg.Billing.Rate),
		Issuer:     invoice.IssuerFrom(cfg.Billing),
		Cache:      mw.NewResponseCache(cfg.Server.CacheTTL, api.SessionScope),
		Logger:     logger,
	}

	if cfg.Auth.ProviderURL != "" {
		opts.Identity = auth.NewClient(cfg.Auth)
	}

	var pool *notification.WorkerPool
	if cfg.Push.Enabled() {
		opts.WebPush = notification.WebPushOptions(cfg.Push)
		pool = notification.NewWorkerPool(cfg.WorkerPool, appStore, opts.WebPush, logger)
		pool.Start(ctx)
		opts.Notifier = pool
		logger.WithField("workers", cfg.WorkerPool.Size).Info("technician notifications enabled")
	} else {
		logger.Warn("VAPID keys not configured, technician notifications disabled")
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(appStore, opts)
	router := api.NewRouter(handler, auth.NewVerifier(cfg.Auth), cfg.Server, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server Shutdown: %v", err)
	}
	cancel()
	if pool != nil {
		pool.Wait()
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server gracefully stopped")
}

func configureLogger(l *logrus.Logger, cfg config.LogConfig) {
	l.SetOutput(os.Stdout)
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		l.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
}
