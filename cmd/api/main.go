// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

// Command api is the entry point for the AV3 Hub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Decide the operating mode: live when both the database URL and the
//     session secret are configured, guest otherwise. Missing backend
//     configuration is never fatal — it deterministically selects guest
//     mode, where reads serve the sample catalog and writes are rejected.
//  4. Live mode only: connect to PostgreSQL and Redis, run migrations,
//     open the blob store, start the profile provisioner worker.
//  5. Wire HTTP handlers over either the live or the guest stores.
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
	"time"

	"github.com/av3hub/avhub/internal/api"
	"github.com/av3hub/avhub/internal/hub/program"
	"github.com/av3hub/avhub/internal/hub/script"
	"github.com/av3hub/avhub/internal/hub/social"
	"github.com/av3hub/avhub/internal/platform/config"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/middleware"
	"github.com/av3hub/avhub/internal/platform/migration"
	pgstore "github.com/av3hub/avhub/internal/platform/postgres"
	redisstore "github.com/av3hub/avhub/internal/platform/redis"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/internal/platform/storage"
	"github.com/av3hub/avhub/internal/users/account"
	"github.com/av3hub/avhub/internal/users/auth"
	"github.com/av3hub/avhub/internal/users/provision"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[AV3Hub] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("backend_configured", cfg.HasBackend()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Background context for long-lived workers; canceled on shutdown.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// ── 3. Mode Selection & Wiring ────────────────────────────────────────
	var wiring appWiring
	if cfg.HasBackend() {
		wiring = wireLive(startupCtx, workerCtx, cfg, log)
	} else {
		log.Warn("backend configuration absent, starting in guest mode")
		wiring = wireGuest(log)
	}
	defer wiring.close(log)

	// ── 4. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(wiring.health, log)

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      wiring.authHandler,
		Identity:  wiring.identityHandler,
		Account:   wiring.accountHandler,
		Script:    wiring.scriptHandler,
		Program:   wiring.programHandler,
		Social:    wiring.socialHandler,
	}

	server := api.NewServer(workerCtx, cfg, log, wiring.verifier, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// appWiring is everything mode selection produces: the handler set, the
// token verifier (nil in guest mode), the health checkers, and the
// teardown hooks for whatever connections were opened.
type appWiring struct {
	verifier        middleware.TokenVerifier
	health          api.HealthDependencies
	authHandler     *auth.Handler
	identityHandler *api.IdentityHandler
	accountHandler  *account.Handler
	scriptHandler   *script.Handler
	programHandler  *program.Handler
	socialHandler   *social.Handler
	closers         []func(log *slog.Logger)
}

func (w *appWiring) close(log *slog.Logger) {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i](log)
	}
}

// wireLive connects the real backends and builds every handler over the
// live stores. Any failure here is fatal: a half-configured backend is
// worse than an honest guest deployment.
func wireLive(startupCtx, workerCtx context.Context, cfg *config.Config, log *slog.Logger) appWiring {
	var wiring appWiring

	// PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	wiring.closers = append(wiring.closers, func(log *slog.Logger) {
		log.Info("closing postgres pool")
		pool.Close()
	})

	// Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	wiring.closers = append(wiring.closers, func(log *slog.Logger) {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	})

	// Migrations
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// Blob storage. A deployment without a bucket still runs; uploads
	// are rejected the same way guest mode rejects them.
	var blobs storage.BlobStore
	if cfg.HasBlobStore() {
		s3store, err := storage.NewS3Store(cfg)
		must(log, err, "open blob store")
		blobs = s3store
	} else {
		log.Warn("no blob storage configured, file uploads disabled")
		blobs = storage.NewGuestStore()
	}

	// Tokens
	tokenService, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")
	wiring.verifier = tokenService

	// Stores
	credentialRepo := auth.NewPostgresCredentialRepository(pool)
	resetTokenRepo := auth.NewRedisResetTokenRepository(rdb)
	profileRepo := account.NewPostgresProfileRepository(pool)
	settingsRepo := account.NewPostgresSettingsRepository(pool)
	scriptRepo := script.NewPostgresRepository(pool)
	programRepo := program.NewPostgresRepository(pool)
	commentRepo := social.NewPostgresCommentRepository(pool)
	likeRepo := social.NewPostgresLikeRepository(pool)
	provisionQueue := provision.NewRedisQueue(rdb)

	// The provisioner materializes queued profiles until shutdown.
	provisioner := provision.NewWorker(provisionQueue, profileRepo, log)
	go provisioner.Run(workerCtx)

	// Services
	authService := auth.NewService(credentialRepo, profileRepo, profileRepo, resetTokenRepo, provisionQueue, tokenService)
	accountService := account.NewService(profileRepo, settingsRepo, blobs, log)
	scriptService := script.NewService(scriptRepo, log)
	programService := program.NewService(programRepo, log)
	socialService := social.NewService(commentRepo, likeRepo, log)

	// Handlers
	wiring.authHandler = auth.NewHandler(authService)
	wiring.identityHandler = api.NewIdentityHandler(accountService)
	wiring.accountHandler = account.NewHandler(accountService)
	wiring.scriptHandler = script.NewHandler(scriptService)
	wiring.programHandler = program.NewHandler(programService)
	wiring.socialHandler = social.NewHandler(socialService)

	wiring.health = api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}

	return wiring
}

// wireGuest builds the same handler set over the stub stores: reads
// serve the fixed sample catalog, writes are rejected, and requests are
// never authenticated (the verifier stays nil).
func wireGuest(log *slog.Logger) appWiring {
	scriptService := script.NewService(script.NewGuestRepository(), log)
	programService := program.NewService(program.NewGuestRepository(), log)
	socialService := social.NewService(social.NewGuestCommentRepository(), social.NewGuestLikeRepository(), log)
	accountService := account.NewService(
		account.NewGuestProfileRepository(),
		account.NewGuestSettingsRepository(),
		storage.NewGuestStore(),
		log,
	)

	return appWiring{
		authHandler:     auth.NewHandler(auth.NewGuestService()),
		identityHandler: api.NewIdentityHandler(nil),
		accountHandler:  account.NewHandler(accountService),
		scriptHandler:   script.NewHandler(scriptService),
		programHandler:  program.NewHandler(programService),
		socialHandler:   social.NewHandler(socialService),
	}
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
