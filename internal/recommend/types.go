// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

// Mode selects the ranking strategy.
type Mode string

// Ranking modes.
const (
	// ModeHybrid blends content similarity and behavioral scoring.
	ModeHybrid Mode = "hybrid"

	// ModeBehavioral ranks purely by the behavioral score.
	ModeBehavioral Mode = "behavioral"

	// ModeSeasonal ranks by behavioral fit for the current season,
	// ignoring occasion.
	ModeSeasonal Mode = "seasonal"

	// ModeDiscovery surfaces never-worn and long-neglected colognes.
	ModeDiscovery Mode = "discovery"
)

// ParseMode parses a mode string. Empty input defaults to hybrid.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeHybrid, nil
	case ModeHybrid:
		return ModeHybrid, nil
	case ModeBehavioral:
		return ModeBehavioral, nil
	case ModeSeasonal:
		return ModeSeasonal, nil
	case ModeDiscovery:
		return ModeDiscovery, nil
	default:
		return "", fmt.Errorf("unknown recommendation mode %q", s)
	}
}

// Recommendation is one ranked result.
type Recommendation struct {
	Cologne models.Cologne `json:"cologne"`
	Score   float64        `json:"score"`
	Reasons []string       `json:"reasons,omitempty"`
}

// WearPattern aggregates one cologne's wear events. Colognes with zero
// events have no pattern at all; absence means "never worn".
type WearPattern struct {
	// WearCount is the total number of wear events, rated or not.
	WearCount int

	// RatingSum and RatingCount accumulate only rated wears. Unrated
	// wears count toward WearCount but not the average.
	RatingSum   float64
	RatingCount int

	// SeasonCounts histograms wears by season.
	SeasonCounts map[models.Season]int

	// OccasionCounts histograms wears by lower-cased occasion.
	OccasionCounts map[string]int

	// LastWorn is the most recent wear timestamp.
	LastWorn time.Time

	// WearTimes holds every wear timestamp, unordered.
	WearTimes []time.Time
}

// AvgRating returns the mean of rated wears, or 0 if none were rated.
func (p *WearPattern) AvgRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return p.RatingSum / float64(p.RatingCount)
}

// SeasonFreq returns the fraction of wears that fell in season.
func (p *WearPattern) SeasonFreq(season models.Season) float64 {
	if p.WearCount == 0 {
		return 0
	}
	return float64(p.SeasonCounts[season]) / float64(p.WearCount)
}

// OccasionFreq returns the fraction of wears logged for occasion.
// Matching is case-insensitive.
func (p *WearPattern) OccasionFreq(occasion string) float64 {
	if p.WearCount == 0 {
		return 0
	}
	return float64(p.OccasionCounts[strings.ToLower(occasion)]) / float64(p.WearCount)
}

// DaysSince returns full days elapsed since the last wear.
func (p *WearPattern) DaysSince(now time.Time) float64 {
	return now.Sub(p.LastWorn).Hours() / 24
}

// WearsWithin counts wears inside the trailing window of days.
func (p *WearPattern) WearsWithin(now time.Time, days int) int {
	cutoff := now.AddDate(0, 0, -days)
	n := 0
	for _, t := range p.WearTimes {
		if !t.Before(cutoff) {
			n++
		}
	}
	return n
}
