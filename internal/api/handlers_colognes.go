// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/scentwell/scentwell/internal/models"
	"github.com/scentwell/scentwell/internal/store"
	"github.com/scentwell/scentwell/internal/validation"
)

// addCologneRequest is the POST /colognes payload.
type addCologneRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Brand           string   `json:"brand" validate:"required,max=200"`
	Notes           []string `json:"notes"`
	Classifications []string `json:"classifications"`
}

// logWearRequest is the POST /colognes/{id}/wears payload. An empty date
// means "now"; an empty season derives from the wear month.
type logWearRequest struct {
	Date     string   `json:"date"`
	Season   string   `json:"season" validate:"omitempty,season"`
	Occasion string   `json:"occasion" validate:"required,max=100"`
	Rating   *float64 `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (s *Server) handleListColognes(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	colognes, err := s.store.GetColognes(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if colognes == nil {
		colognes = []models.Cologne{}
	}
	rw.Success(colognes)
}

func (s *Server) handleAddCologne(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	var req addCologneRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(ErrCodeInvalidJSON, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ErrorPayload(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	created, err := s.store.AddCologne(r.Context(), req.Name, req.Brand, req.Notes, req.Classifications)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			rw.Conflict(err.Error())
			return
		}
		rw.DatabaseError(err)
		return
	}

	//nolint:errcheck // model refresh failure does not undo the write
	s.rebuild(r.Context())
	rw.Created(created)
}

func (s *Server) handleGetCologne(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	cologne, err := s.store.GetCologne(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("cologne not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(cologne)
}

func (s *Server) handleDeleteCologne(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteCologne(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("cologne not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	//nolint:errcheck // model refresh failure does not undo the write
	s.rebuild(r.Context())
	rw.Success(map[string]int64{"deleted": id})
}

func (s *Server) handleGetWearHistory(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	if _, err := s.store.GetCologne(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("cologne not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	history, err := s.store.GetWearHistory(r.Context(), id)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if history == nil {
		history = []models.WearEvent{}
	}
	rw.Success(history)
}

func (s *Server) handleLogWear(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	var req logWearRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(ErrCodeInvalidJSON, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ErrorPayload(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	wornAt := time.Now().UTC()
	if req.Date != "" {
		wornAt, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			rw.BadRequest(ErrCodeBadRequest, "date must be RFC 3339")
			return
		}
	}

	season, ok := models.ParseSeason(req.Season)
	if !ok {
		season = models.SeasonForMonth(wornAt.Month())
	}

	event, err := s.store.LogWear(r.Context(), id, wornAt, season, req.Occasion, req.Rating)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("cologne not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	//nolint:errcheck // model refresh failure does not undo the write
	s.rebuild(r.Context())
	rw.Created(event)
}
