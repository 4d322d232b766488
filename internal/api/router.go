// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scentwell/scentwell/internal/middleware"
)

// Router builds the HTTP routing table with the standard middleware
// stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	if len(s.cfg.Security.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Security.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if !s.cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(s.cfg.Security.RateLimitReqs, s.cfg.Security.RateLimitWindow))
	}

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/colognes", func(r chi.Router) {
			r.Get("/", s.handleListColognes)
			r.Post("/", s.handleAddCologne)
			r.Get("/{id}", s.handleGetCologne)
			r.Delete("/{id}", s.handleDeleteCologne)
			r.Get("/{id}/wears", s.handleGetWearHistory)
			r.Post("/{id}/wears", s.handleLogWear)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", s.handleRecommendations)
			r.Get("/similar/{id}", s.handleSimilar)
			r.Get("/explanations", s.handleExplanations)
			r.Get("/rotation", s.handleRotation)
		})

		r.Route("/import", func(r chi.Router) {
			r.Post("/analyze", s.handleImportAnalyze)
			r.Post("/apply", s.handleImportApply)
			r.Post("/csv", s.handleImportCSV)
			r.Get("/history", s.handleImportHistory)
			r.Get("/statistics", s.handleImportStatistics)
			r.Delete("/history/{id}", s.handleDeleteImportRecord)
			r.Post("/history/{id}/notes", s.handleAddImportNotes)
		})

		r.Get("/export", s.handleExport)
	})

	return r
}
