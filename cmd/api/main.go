// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Church Wallet HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env outside production).
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Wire services, handlers and the dues scheduler.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/churchwallet/internal/api"
	"github.com/taibuivan/churchwallet/internal/core/church"
	"github.com/taibuivan/churchwallet/internal/core/kudumbakutayima"
	"github.com/taibuivan/churchwallet/internal/core/member"
	"github.com/taibuivan/churchwallet/internal/core/unit"
	"github.com/taibuivan/churchwallet/internal/finance/campaign"
	"github.com/taibuivan/churchwallet/internal/finance/dues"
	"github.com/taibuivan/churchwallet/internal/finance/transaction"
	"github.com/taibuivan/churchwallet/internal/platform/config"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	"github.com/taibuivan/churchwallet/internal/platform/migration"
	pgstore "github.com/taibuivan/churchwallet/internal/platform/postgres"
	redisstore "github.com/taibuivan/churchwallet/internal/platform/redis"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/users/account"
	"github.com/taibuivan/churchwallet/internal/users/auth"
)

func main() {
	// 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// 2. Configuration
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.LogLevel != slog.LevelInfo {
		log = newLogger(cfg.LogLevel)
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("log_level", cfg.LogLevel.String()),
		slog.Bool("dues_enabled", cfg.DuesEnabled),
	)
	if cfg.UsingFallbackSecrets() {
		log.Warn("insecure_fallback_jwt_secrets", slog.String("environment", cfg.Environment))
	}

	// Root context of the process. Cancelled on SIGINT/SIGTERM.
	root, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup is bounded so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startup, startupCancel := context.WithTimeout(root, constants.StartupTimeout)
	defer startupCancel()

	// 3. Migrations
	must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

	// 4. PostgreSQL
	pool, err := pgstore.NewPool(startup, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// 5. Redis
	rdb, err := redisstore.NewClient(startup, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// 6. Platform services
	registry := metrics.New()
	registry.RegisterPool(pool)

	tokens, err := sec.NewTokenService(cfg.TokenConfig())
	must(log, err, "initialize token service")

	limiter := middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst, cfg.TrustedProxyPrefixes()...)
	go limiter.Janitor(root, constants.RateLimitCleanupInterval)

	// 7. Domain wiring
	accountRepository := account.NewPostgresRepository(pool)
	identities := auth.NewIdentityResolver(accountRepository, cfg.IdentityCacheTTL)

	accountService := account.NewService(accountRepository, identities, log)
	authService := auth.NewService(accountRepository, auth.NewRevocationStore(rdb), tokens, registry, log)

	duesRepository := dues.NewPostgresRepository(pool)
	duesProcessor := dues.NewProcessor(duesRepository, redisstore.NewLocker(rdb), registry, log, cfg.DuesGraceDays)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	handlers := api.Handlers{
		Liveness:        liveness,
		Readiness:       readiness,
		Auth:            auth.NewHandler(authService, !cfg.IsDevelopment()),
		Account:         account.NewHandler(accountService),
		Church:          church.NewHandler(church.NewService(church.NewPostgresRepository(pool), log)),
		Unit:            unit.NewHandler(unit.NewService(unit.NewPostgresRepository(pool), log)),
		Kudumbakutayima: kudumbakutayima.NewHandler(kudumbakutayima.NewService(kudumbakutayima.NewPostgresRepository(pool), log)),
		Member:          member.NewHandler(member.NewService(member.NewPostgresRepository(pool), log)),
		Transaction:     transaction.NewHandler(transaction.NewService(transaction.NewPostgresRepository(pool), log)),
		Campaign:        campaign.NewHandler(campaign.NewService(campaign.NewPostgresRepository(pool), log)),
		Dues:            dues.NewHandler(dues.NewService(duesRepository), duesProcessor),
	}

	// 8. Dues scheduler
	schedulerDone := make(chan struct{})
	if cfg.DuesEnabled {
		scheduler := dues.NewScheduler(duesProcessor, cfg.DuesSchedule, log)
		go func() {
			defer close(schedulerDone)
			if err := scheduler.Run(root); err != nil {
				log.Error("dues_scheduler_failed", slog.Any("error", err))
			}
		}()
	} else {
		close(schedulerDone)
	}

	// 9. HTTP Server
	server := api.NewServer(cfg, log, api.Platform{
		Tokens:     tokens,
		Identities: identities,
		Limiter:    limiter,
		Metrics:    registry,
	}, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-root.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
		stop()
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
	}
	<-schedulerDone

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON process logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
