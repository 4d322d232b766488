// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package api

import (
	"context"

	"github.com/scentwell/scentwell/internal/config"
	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/recommend"
	"github.com/scentwell/scentwell/internal/reconcile"
	"github.com/scentwell/scentwell/internal/store"
)

// Server wires the HTTP handlers to the store and the two engines.
type Server struct {
	cfg        *config.Config
	store      *store.Store
	engine     *recommend.Engine
	analyzer   *reconcile.Analyzer
	reconciler *reconcile.Reconciler
}

// NewServer creates the API server and performs the initial model build.
func NewServer(ctx context.Context, cfg *config.Config, st *store.Store, engine *recommend.Engine) (*Server, error) {
	s := &Server{
		cfg:        cfg,
		store:      st,
		engine:     engine,
		analyzer:   reconcile.NewAnalyzer(st),
		reconciler: reconcile.NewReconciler(st),
	}
	if err := s.rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild refreshes the recommendation model from a full store snapshot.
// Called after every mutation; the previous model stays live on failure.
func (s *Server) rebuild(ctx context.Context) error {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("snapshot for model rebuild failed")
		return err
	}
	s.engine.Rebuild(snap.Colognes, snap.Wears)
	return nil
}
