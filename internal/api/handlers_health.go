// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package api

import (
	"net/http"
)

// healthResponse reports process and model status.
type healthResponse struct {
	Status     string `json:"status"`
	ModelItems int    `json:"model_items"`
	Database   string `json:"database"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	status := "ok"
	database := "ok"
	if _, err := s.store.GetImportStatistics(r.Context()); err != nil {
		status = "degraded"
		database = err.Error()
	}

	rw.Success(healthResponse{
		Status:     status,
		ModelItems: s.engine.ModelSize(),
		Database:   database,
	})
}
