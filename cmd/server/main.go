// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

// Command server runs the SIDRAMA web server: a browser-rendered movie and
// TV show review platform over an externally-owned PostgreSQL database.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/anirudhkashyap/sidrama/internal/auth"
	"github.com/anirudhkashyap/sidrama/internal/config"
	"github.com/anirudhkashyap/sidrama/internal/database"
	"github.com/anirudhkashyap/sidrama/internal/logging"
	"github.com/anirudhkashyap/sidrama/internal/metrics"
	"github.com/anirudhkashyap/sidrama/internal/supervisor"
	"github.com/anirudhkashyap/sidrama/internal/supervisor/services"
	"github.com/anirudhkashyap/sidrama/internal/web"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting SIDRAMA")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Security.JWTSecret == "" {
		// Development convenience: remember-me tokens won't survive a
		// restart, which is fine outside production.
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate ephemeral secret: %w", err)
		}
		cfg.Security.JWTSecret = hex.EncodeToString(secret)
		logging.Warn().Msg("JWT_SECRET not set, using an ephemeral secret")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	sessions := auth.NewMemorySessionStore()
	authSvc := auth.NewService(db, sessions, jwtManager, &cfg.Security)
	cookies := &auth.CookieWriter{Secure: cfg.Security.CookieSecure}

	handler, err := web.NewHandler(db, authSvc, cookies, jwtManager.Timeout(), cfg.Catalog)
	if err != nil {
		return fmt.Errorf("init handlers: %w", err)
	}
	router := web.NewRouter(handler, authSvc, cookies, &cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(slog.New(slog.NewJSONHandler(os.Stderr, nil)), treeConfig)
	tree.AddWebService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewSessionJanitorService(sessions, 5*time.Minute))

	logging.Info().Str("addr", server.Addr).Msg("Listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
