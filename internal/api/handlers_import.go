// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package api

import (
	"errors"
	"net/http"

	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/reconcile"
	"github.com/scentwell/scentwell/internal/store"
)

// importApplyRequest is the POST /import/apply payload. Resolutions map
// "name|brand" natural keys to skip, overwrite, or merge; absent keys
// default to skip.
type importApplyRequest struct {
	reconcile.Payload
	Filename    string            `json:"filename"`
	Resolutions map[string]string `json:"resolutions"`
}

func (s *Server) handleImportAnalyze(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	var payload reconcile.Payload
	if err := s.decodeJSON(w, r, &payload); err != nil {
		rw.BadRequest(ErrCodeInvalidJSON, err.Error())
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), &payload)
	if err != nil {
		if errors.Is(err, reconcile.ErrMissingColognes) {
			rw.BadRequest(ErrCodeInvalidJSON, err.Error())
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(report)
}

func (s *Server) handleImportApply(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	var req importApplyRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(ErrCodeInvalidJSON, err.Error())
		return
	}

	resolutions := make(map[string]reconcile.Resolution, len(req.Resolutions))
	for key, raw := range req.Resolutions {
		resolution, err := reconcile.ParseResolution(raw)
		if err != nil {
			rw.BadRequest(ErrCodeBadRequest, err.Error())
			return
		}
		resolutions[key] = resolution
	}

	report, err := s.reconciler.Apply(r.Context(), &req.Payload, resolutions, req.Filename)
	if err != nil {
		if errors.Is(err, reconcile.ErrMissingColognes) {
			rw.BadRequest(ErrCodeInvalidJSON, err.Error())
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("import apply failed")
		rw.Error(http.StatusInternalServerError, ErrCodeImportError, err.Error())
		return
	}

	//nolint:errcheck // model refresh failure does not undo the import
	s.rebuild(r.Context())
	rw.Success(report)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	body := http.MaxBytesReader(w, r.Body, s.cfg.API.MaxImportBytes)
	report, err := s.reconciler.ImportCSV(r.Context(), body, r.URL.Query().Get("filename"))
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeImportError, err.Error())
		return
	}

	//nolint:errcheck // model refresh failure does not undo the import
	s.rebuild(r.Context())
	rw.Success(report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	payload, err := reconcile.Export(r.Context(), s.store)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(payload)
}

func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	history, err := s.store.ListImportHistory(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if history == nil {
		history = []store.ImportRecord{}
	}
	rw.Success(history)
}

func (s *Server) handleImportStatistics(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	stats, err := s.store.GetImportStatistics(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(stats)
}

func (s *Server) handleDeleteImportRecord(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteImportRecord(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("import record not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]int64{"deleted": id})
}

// importNotesRequest is the POST /import/history/{id}/notes payload.
type importNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=2000"`
}

func (s *Server) handleAddImportNotes(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	var req importNotesRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(ErrCodeInvalidJSON, err.Error())
		return
	}
	if req.Notes == "" {
		rw.BadRequest(ErrCodeBadRequest, "notes must not be empty")
		return
	}

	if err := s.store.AddImportNotes(r.Context(), id, req.Notes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("import record not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	record, err := s.store.GetImportRecord(r.Context(), id)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(record)
}
