// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package api

import (
	"net/http"
	"strings"

	"github.com/scentwell/scentwell/internal/models"
	"github.com/scentwell/scentwell/internal/recommend"
)

// recommendationsResponse carries ranked results plus the effective query.
type recommendationsResponse struct {
	Mode            recommend.Mode             `json:"mode"`
	Season          models.Season              `json:"season,omitempty"`
	Occasion        string                     `json:"occasion,omitempty"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)
	q := r.URL.Query()

	mode, err := recommend.ParseMode(q.Get("mode"))
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	var season models.Season
	if raw := q.Get("season"); raw != "" {
		var ok bool
		if season, ok = models.ParseSeason(raw); !ok {
			rw.BadRequest(ErrCodeBadRequest, "season must be one of: spring, summer, fall, winter")
			return
		}
	}

	var recs []recommend.Recommendation
	if target := int64(queryInt(r, "target", 0)); target > 0 && mode == recommend.ModeHybrid {
		// Hybrid around a specific cologne blends content similarity to
		// the target with behavioral scores.
		recs = s.engine.RecommendAround(target, season, q.Get("occasion"), queryInt(r, "k", 0))
	} else {
		recs = s.engine.Recommend(recommend.Request{
			Mode:     mode,
			Season:   season,
			Occasion: q.Get("occasion"),
			K:        queryInt(r, "k", 0),
		})
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	rw.Success(recommendationsResponse{
		Mode:            mode,
		Season:          season,
		Occasion:        q.Get("occasion"),
		Recommendations: recs,
	})
}

// explanationEntry pairs a ranked cologne with one readable explanation
// line.
type explanationEntry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

func (s *Server) handleExplanations(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)
	q := r.URL.Query()

	mode, err := recommend.ParseMode(q.Get("mode"))
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	var season models.Season
	if raw := q.Get("season"); raw != "" {
		var ok bool
		if season, ok = models.ParseSeason(raw); !ok {
			rw.BadRequest(ErrCodeBadRequest, "season must be one of: spring, summer, fall, winter")
			return
		}
	}

	recs := s.engine.Recommend(recommend.Request{
		Mode:     mode,
		Season:   season,
		Occasion: q.Get("occasion"),
		K:        queryInt(r, "k", 0),
	})

	entries := make([]explanationEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, explanationEntry{
			ID:          rec.Cologne.ID,
			Name:        rec.Cologne.Name,
			Brand:       rec.Cologne.Brand,
			Score:       rec.Score,
			Explanation: strings.Join(rec.Reasons, ", "),
		})
	}
	rw.Success(entries)
}

func (s *Server) handleRotation(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	suggestions := s.engine.RotationSuggestions(queryInt(r, "k", 0))
	if suggestions == nil {
		suggestions = []recommend.RotationSuggestion{}
	}
	rw.Success(suggestions)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)

	id, err := idParam(r)
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, err.Error())
		return
	}

	recs := s.engine.SimilarTo(id, queryInt(r, "k", 0))
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	rw.Success(recommendationsResponse{
		Mode:            "content",
		Recommendations: recs,
	})
}
