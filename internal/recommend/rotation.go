// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/scentwell/scentwell/internal/metrics"
	"github.com/scentwell/scentwell/internal/models"
)

// Rotation thresholds. A cologne needs at least rotationMinPriority
// accumulated points to be suggested.
const (
	rotationNeglectDays     = 14
	rotationRarelyWornMax   = 2
	rotationRareGapDays     = 7
	rotationRecentWindow    = 30
	rotationOveruseWears    = 3
	rotationMinPriority     = 2
	rotationHighRatedFloor  = 4.0
	rotationNeverWornPoints = 5
)

// RotationSuggestion is one rotation candidate with its priority
// breakdown. DaysSinceWorn is nil for never-worn colognes.
type RotationSuggestion struct {
	Cologne       models.Cologne `json:"cologne"`
	Reasons       []string       `json:"reasons"`
	Priority      int            `json:"priority"`
	DaysSinceWorn *int           `json:"days_since_worn,omitempty"`
	AvgRating     float64        `json:"avg_rating"`
	TotalWears    int            `json:"total_wears"`
}

// RotationSuggestions ranks colognes that deserve a turn in the
// rotation: never-worn bottles, high-rated but neglected ones, rarely
// worn variety picks, and seasonal fits that have not been overused
// lately. Results sort by priority, highest first.
func (e *Engine) RotationSuggestions(k int) []RotationSuggestion {
	m := e.snapshot()
	now := e.now()
	k = e.clampK(k)
	season := models.CurrentSeason(now)

	metrics.RecommendRequestsTotal.WithLabelValues("rotation").Inc()

	suggestions := make([]RotationSuggestion, 0, len(m.order))
	for _, id := range m.order {
		c := m.byID[id]
		if s, ok := e.rotationCandidate(c, m.patterns[id], season, now); ok {
			suggestions = append(suggestions, s)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority > suggestions[j].Priority
	})
	if len(suggestions) > k {
		suggestions = suggestions[:k]
	}
	return suggestions
}

// rotationCandidate scores one cologne. Candidates without a reason or
// below the priority floor are rejected.
func (e *Engine) rotationCandidate(c *models.Cologne, p *WearPattern, season models.Season, now time.Time) (RotationSuggestion, bool) {
	s := RotationSuggestion{Cologne: *c}

	if p == nil {
		s.Reasons = append(s.Reasons, "never worn, time to try it")
		s.Priority += rotationNeverWornPoints
		// Zero recent wears, so the not-overused point always applies.
		s.Priority++
		return s, true
	}

	days := int(p.DaysSince(now))
	s.DaysSinceWorn = &days
	s.AvgRating = p.AvgRating()
	s.TotalWears = p.WearCount

	if s.AvgRating >= rotationHighRatedFloor && days >= rotationNeglectDays {
		s.Reasons = append(s.Reasons,
			fmt.Sprintf("high-rated (%.1f) but not worn in %d days", s.AvgRating, days))
		s.Priority += 3
	}
	if p.WearCount <= rotationRarelyWornMax && days >= rotationRareGapDays {
		s.Reasons = append(s.Reasons, "rarely worn, good for variety")
		s.Priority += 2
	}
	if p.SeasonCounts[season] > 0 {
		s.Reasons = append(s.Reasons, fmt.Sprintf("great for %s", season))
		s.Priority++
	}
	if p.WearsWithin(now, rotationRecentWindow) < rotationOveruseWears {
		s.Priority++
	}

	if len(s.Reasons) == 0 || s.Priority < rotationMinPriority {
		return RotationSuggestion{}, false
	}
	return s, true
}
