// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package main is the entry point for the Scentwell server.
//
// Scentwell tracks a personal fragrance collection, logs wear events,
// and serves recommendations built from tag similarity and wear
// patterns. It also reconciles imported collection files against the
// existing data with per-conflict skip, overwrite, or merge policies.
//
// The server initializes in order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML, env)
//  2. Storage: SQLite collection store with the import audit trail
//  3. Recommendation engine: initial model build from a full snapshot
//  4. HTTP server: chi REST API plus Prometheus /metrics
//
// Shutdown is graceful on SIGINT and SIGTERM: new connections stop,
// in-flight requests get 10 seconds to finish, and the store closes.
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

	"github.com/scentwell/scentwell/internal/api"
	"github.com/scentwell/scentwell/internal/config"
	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/recommend"
	"github.com/scentwell/scentwell/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; config not yet available.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("starting Scentwell")

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	engineCfg := recommend.DefaultConfig()
	engineCfg.Limits.DefaultK = cfg.Recommend.DefaultK
	engineCfg.Limits.MaxK = cfg.Recommend.MaxK
	if err := engineCfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid recommendation configuration")
	}
	engine := recommend.NewEngine(engineCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := api.NewServer(ctx, cfg, st, engine)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize API server")
	}
	logging.Info().Int("model_items", engine.ModelSize()).Msg("recommendation model ready")

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("stopped gracefully")
}
