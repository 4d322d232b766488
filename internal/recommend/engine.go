// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"sort"
	"sync"
	"time"

	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/metrics"
	"github.com/scentwell/scentwell/internal/models"
)

// model is one immutable rebuild snapshot. Readers take the current model
// under a read lock and use it without further synchronization.
type model struct {
	order    []int64
	byID     map[int64]*models.Cologne
	vectors  map[int64]featureVector
	patterns map[int64]*WearPattern
}

// Engine serves recommendation queries against the latest model snapshot.
type Engine struct {
	cfg *Config
	now func() time.Time

	mu    sync.RWMutex
	model *model
}

// NewEngine creates an engine with an empty model. A nil cfg uses
// DefaultConfig.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg: cfg,
		now: time.Now,
		model: &model{
			byID:     make(map[int64]*models.Cologne),
			vectors:  make(map[int64]featureVector),
			patterns: make(map[int64]*WearPattern),
		},
	}
}

// Rebuild derives a fresh model from a full collection snapshot and swaps
// it in atomically. The previous snapshot stays intact for readers until
// the swap; a rebuild never exposes partial state.
func (e *Engine) Rebuild(colognes []models.Cologne, wears []models.WearEvent) {
	start := time.Now()

	m := &model{
		order:    make([]int64, 0, len(colognes)),
		byID:     make(map[int64]*models.Cologne, len(colognes)),
		vectors:  buildVectors(colognes),
		patterns: buildPatterns(wears),
	}
	for i := range colognes {
		m.order = append(m.order, colognes[i].ID)
		m.byID[colognes[i].ID] = &colognes[i]
	}

	e.mu.Lock()
	e.model = m
	e.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RecordRebuild(len(colognes), elapsed)
	logging.Debug().
		Int("colognes", len(colognes)).
		Int("wear_events", len(wears)).
		Dur("elapsed", elapsed).
		Msg("recommendation model rebuilt")
}

// snapshot returns the current model.
func (e *Engine) snapshot() *model {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model
}

// ModelSize returns the number of colognes in the current model.
func (e *Engine) ModelSize() int {
	return len(e.snapshot().order)
}

// Request selects what to recommend.
type Request struct {
	// Mode selects the ranking strategy. Zero value is not valid; use
	// ParseMode to obtain one.
	Mode Mode

	// Season biases behavioral scoring. Empty derives the current
	// season from the calendar.
	Season models.Season

	// Occasion biases behavioral scoring when non-empty.
	Occasion string

	// K caps the result count. Non-positive uses the configured
	// default; values above the configured maximum are clamped.
	K int
}

// clampK applies the configured default and maximum.
func (e *Engine) clampK(k int) int {
	if k <= 0 {
		return e.cfg.Limits.DefaultK
	}
	if k > e.cfg.Limits.MaxK {
		return e.cfg.Limits.MaxK
	}
	return k
}

// Recommend returns ranked recommendations for the request. An empty
// collection yields an empty list.
func (e *Engine) Recommend(req Request) []Recommendation {
	m := e.snapshot()
	now := e.now()
	k := e.clampK(req.K)

	season := req.Season
	if season == "" {
		season = models.CurrentSeason(now)
	}

	metrics.RecommendRequestsTotal.WithLabelValues(string(req.Mode)).Inc()

	var scored []scoredID
	switch req.Mode {
	case ModeSeasonal:
		scored = e.cfg.behavioralScores(m.order, m.patterns, models.CurrentSeason(now), "", now, k)
	case ModeDiscovery:
		scored = e.cfg.discoveryScores(m.order, m.patterns, now, k)
	case ModeBehavioral:
		scored = e.cfg.behavioralScores(m.order, m.patterns, season, req.Occasion, now, k)
	default:
		// Hybrid without a target item reduces to weighted behavioral.
		scored = e.hybridScores(m, 0, season, req.Occasion, now, k)
	}

	return e.materialize(m, scored, season, now)
}

// SimilarTo returns colognes ranked by content similarity to the target.
// An unknown target yields an empty list.
func (e *Engine) SimilarTo(targetID int64, k int) []Recommendation {
	m := e.snapshot()
	now := e.now()
	k = e.clampK(k)

	metrics.RecommendRequestsTotal.WithLabelValues("content").Inc()

	scored := contentScores(targetID, m.order, m.vectors, k)
	return e.materialize(m, scored, models.CurrentSeason(now), now)
}

// hybridScores sums weighted content and behavioral contributions into
// one ranking. A zero targetID skips the content side entirely. Items
// present in only one source keep their single weighted contribution;
// the combined score is not renormalized.
func (e *Engine) hybridScores(m *model, targetID int64, season models.Season, occasion string, now time.Time, k int) []scoredID {
	combined := make(map[int64]float64, len(m.order))

	if targetID != 0 {
		for _, s := range contentScores(targetID, m.order, m.vectors, k) {
			combined[s.id] += e.cfg.Weights.Content * s.score
		}
	}
	for _, s := range e.cfg.behavioralScores(m.order, m.patterns, season, occasion, now, 0) {
		if s.id == targetID {
			continue
		}
		combined[s.id] += e.cfg.Weights.Behavioral * s.score
	}

	scored := make([]scoredID, 0, len(combined))
	for _, id := range m.order {
		if score, ok := combined[id]; ok {
			scored = append(scored, scoredID{id: id, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// RecommendAround blends content similarity to a target cologne with
// behavioral scores.
func (e *Engine) RecommendAround(targetID int64, season models.Season, occasion string, k int) []Recommendation {
	m := e.snapshot()
	now := e.now()
	k = e.clampK(k)

	if season == "" {
		season = models.CurrentSeason(now)
	}

	metrics.RecommendRequestsTotal.WithLabelValues(string(ModeHybrid)).Inc()

	scored := e.hybridScores(m, targetID, season, occasion, now, k)
	return e.materialize(m, scored, season, now)
}

// materialize resolves scored ids into full recommendations with
// explanation reasons. Ids no longer in the model are dropped.
func (e *Engine) materialize(m *model, scored []scoredID, season models.Season, now time.Time) []Recommendation {
	recs := make([]Recommendation, 0, len(scored))
	for _, s := range scored {
		c := m.byID[s.id]
		if c == nil {
			continue
		}
		recs = append(recs, Recommendation{
			Cologne: *c,
			Score:   s.score,
			Reasons: e.reasons(m.patterns[s.id], season, now),
		})
	}
	return recs
}
