// Copyright (c) 2026 Litho Press. All rights reserved.

// Command api is the entry point for the Litho Press HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/lithopress/litho/internal/analytics"
	"github.com/lithopress/litho/internal/api"
	"github.com/lithopress/litho/internal/content/category"
	"github.com/lithopress/litho/internal/content/post"
	"github.com/lithopress/litho/internal/content/release"
	"github.com/lithopress/litho/internal/newsletter"
	"github.com/lithopress/litho/internal/platform/config"
	"github.com/lithopress/litho/internal/platform/constants"
	"github.com/lithopress/litho/internal/platform/migration"
	pgstore "github.com/lithopress/litho/internal/platform/postgres"
	redisstore "github.com/lithopress/litho/internal/platform/redis"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/social/comment"
	"github.com/lithopress/litho/internal/users/auth"
	"github.com/lithopress/litho/internal/users/staff"
)

// experimentFlushInterval is how often pending A/B counters are folded
// into the durable read model.
const experimentFlushInterval = time.Minute

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "litho"))
	slog.SetDefault(log)

	log.Info("[Litho] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "litho"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Staff access and role resolution
	staffRepository := staff.NewRepository(pool)
	roleResolver := staff.NewResolver(cfg.AdminAllowList(), staffRepository)
	staffService := staff.NewService(staffRepository, log)
	staffHandler := staff.NewHandler(staffService)

	// Authentication
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, roleResolver, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	// Editorial catalogue
	postRepository := post.NewPostgresRepository(pool)
	postService := post.NewService(postRepository, log)
	postHandler := post.NewHandler(postService)

	categoryRepository := category.NewPostgresRepository(pool)
	categoryService := category.NewService(categoryRepository, log)
	categoryHandler := category.NewHandler(categoryService)

	// Comments
	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, postRepository, log)
	commentHandler := comment.NewHandler(commentService)

	// Release calendar
	releaseService := release.NewService(postRepository, rdb, log)
	releaseHandler := release.NewHandler(releaseService)

	// Newsletter
	newsletterRepository := newsletter.NewPostgresRepository(pool)
	newsletterService := newsletter.NewService(newsletterRepository, log)
	newsletterHandler := newsletter.NewHandler(newsletterService)

	// Analytics
	analyticsRepository := analytics.NewPostgresRepository(pool)
	counterStore := analytics.NewCounterStore(rdb)
	analyticsService := analytics.NewService(analyticsRepository, counterStore, log)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Post:       postHandler,
		Category:   categoryHandler,
		Comment:    commentHandler,
		Release:    releaseHandler,
		Staff:      staffHandler,
		Newsletter: newsletterHandler,
		Analytics:  analyticsHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Background Flusher ────────────────────────────────────────────
	go func() {
		ticker := time.NewTicker(experimentFlushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-serverCtx.Done():
				return
			case <-ticker.C:
				if err := analyticsService.Flush(serverCtx); err != nil {
					log.Error("experiment_flush_failed", slog.Any("error", err))
				}
			}
		}
	}()

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	serverCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
