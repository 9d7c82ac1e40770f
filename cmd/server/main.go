// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

// Command server is the entry point for the Camellia storefront.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to MongoDB and ensure indexes (idempotent).
//  4. Connect to Redis when it backs the session store.
//  5. Parse page templates.
//  6. Wire domain services and HTTP handlers.
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

	"github.com/joho/godotenv"

	"github.com/ngocmai/camellia/internal/catalog"
	"github.com/ngocmai/camellia/internal/orders"
	"github.com/ngocmai/camellia/internal/platform/config"
	"github.com/ngocmai/camellia/internal/platform/constants"
	mongostore "github.com/ngocmai/camellia/internal/platform/mongo"
	redisstore "github.com/ngocmai/camellia/internal/platform/redis"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/session"
	"github.com/ngocmai/camellia/internal/users"
	"github.com/ngocmai/camellia/internal/web"
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

	log.Info("[Camellia] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// .env is a development convenience; a missing file is not an error.
	_ = godotenv.Load()

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
		slog.String("session_store", cfg.SessionStore),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. MongoDB ────────────────────────────────────────────────────────
	mongoClient, database, err := mongostore.Connect(startupCtx, cfg.MongoURL, cfg.MongoDatabase, log)
	must(log, err, "connect to mongodb")
	defer func() {
		log.Info("closing mongodb client")
		if cerr := mongoClient.Disconnect(context.Background()); cerr != nil {
			log.Error("mongodb close error", slog.Any("error", cerr))
		}
	}()

	must(log, mongostore.EnsureIndexes(startupCtx, database, log), "ensure indexes")

	// ── 4. Session Store ──────────────────────────────────────────────────
	// One chain, parameterized by backend; Redis is only dialed when chosen.
	var sessionStore session.Store
	var checkSessionStore func() error

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		sessionStore = session.NewRedisStore(rdb)
		checkSessionStore = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	default:
		sessionStore = session.NewMongoStore(database)
	}

	// ── 5. Templates ──────────────────────────────────────────────────────
	renderer, err := render.New(web.Templates, log)
	must(log, err, "parse templates")

	// Session policy shared by the resolution middleware and the auth handler
	// (login rotation needs the same signing secret).
	sessionConfig := session.Config{
		Store:        sessionStore,
		Renderer:     renderer,
		Secret:       cfg.SessionSecret,
		CookieTTL:    cfg.SessionTTL,
		CookieSecure: cfg.IsProduction(),
	}

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckDatabase: func() error {
			return mongostore.Ping(context.Background(), mongoClient)
		},
		CheckSessionStore: checkSessionStore,
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userRepository := users.NewMongoRepository(database)
	userService := users.NewService(userRepository)
	authHandler := users.NewHandler(userService, sessionConfig, renderer)

	productRepository := catalog.NewMongoRepository(database)
	catalogService := catalog.NewService(productRepository)
	shopHandler := catalog.NewShopHandler(catalogService, renderer)
	adminHandler := catalog.NewAdminHandler(catalogService, renderer)

	orderRepository := orders.NewMongoRepository(database)
	orderService := orders.NewService(orderRepository, userRepository, productRepository)
	orderHandler := orders.NewHandler(orderService, renderer)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Shop:      shopHandler,
		Admin:     adminHandler,
		Orders:    orderHandler,
	}

	// The rate limiter's cleanup goroutine stops with this context.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := web.NewServer(serverCtx, cfg, log, web.Dependencies{
		SessionConfig:  sessionConfig,
		UserRepository: userRepository,
		Renderer:       renderer,
	}, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
