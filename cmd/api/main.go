package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/campusfind/lostfound-api/internal/api/router"
	appconfig "github.com/campusfind/lostfound-api/internal/config"
	"github.com/campusfind/lostfound-api/internal/contact"
	httpmiddleware "github.com/campusfind/lostfound-api/internal/http/middleware"
	"github.com/campusfind/lostfound-api/internal/notify"
	"github.com/campusfind/lostfound-api/internal/observability/metrics"
	"github.com/campusfind/lostfound-api/pkg/logging"
)

func main() {
	// Load .env if present; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting campus lost & found contact API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Record store: connect before serving, close on shutdown.
	var repo contact.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = pool.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = contact.NewPostgresRepository(pool)
		logger.Info("database connected")
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		repo = contact.NewInMemoryRepository()
	}

	// Mail relay. When no provider is configured the dispatcher reports
	// unavailable and the workflow skips notifications.
	sender := buildEmailSender(ctx, cfg, logger)
	dispatcher := notify.NewDispatcher(sender, cfg.MailFromEmail, cfg.OperatorEmail, logger)
	if dispatcher.Available() {
		logger.Info("mail relay configured", "provider", cfg.MailProvider)
	} else {
		logger.Warn("mail relay not configured, notifications disabled")
	}

	contactMetrics := metrics.NewContactMetrics(nil)
	service := contact.NewService(repo, dispatcher, contactMetrics, logger)
	contactHandler := contact.NewHandler(service, repo, dispatcher, cfg.Env, logger)

	// Submission rate limiter: Redis-backed when an address is configured so
	// the budget is shared across instances, in-process token bucket otherwise.
	var limiter httpmiddleware.Limiter
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		limiter = httpmiddleware.NewRedisLimiter(redis.NewClient(opts), time.Minute, cfg.SubmitBurst, logger)
	} else {
		limiter = httpmiddleware.NewMemoryLimiter(cfg.SubmitRatePerSec, cfg.SubmitBurst)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		ContactHandler:     contactHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminJWTSecret:     cfg.AdminJWTSecret,
		SubmitLimiter:      limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
