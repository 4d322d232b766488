// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

// behavioralScore computes one cologne's behavioral score. pattern is nil
// for never-worn colognes, which receive the full recency weight and zero
// rating/season/occasion contributions. Scores are not clamped; a
// well-rated, seasonally consistent cologne can exceed 1.0.
func (c *Config) behavioralScore(pattern *WearPattern, season models.Season, occasion string, now time.Time) float64 {
	if pattern == nil {
		return c.Behavioral.RecencyWeight
	}

	score := pattern.AvgRating() / 5.0
	score += c.Behavioral.SeasonWeight * pattern.SeasonFreq(season)
	if occasion != "" {
		score += c.Behavioral.OccasionWeight * pattern.OccasionFreq(occasion)
	}

	days := pattern.DaysSince(now)
	score += math.Min(days/c.Behavioral.RecencySaturationDays, 1.0) * c.Behavioral.RecencyWeight
	return score
}

// behavioralScores ranks the full collection behaviorally. Every cologne
// is scored, worn or not; never-worn colognes go through the nil-pattern
// branch. Returns at most k entries, descending by score.
func (c *Config) behavioralScores(order []int64, patterns map[int64]*WearPattern, season models.Season, occasion string, now time.Time, k int) []scoredID {
	scored := make([]scoredID, 0, len(order))
	for _, id := range order {
		scored = append(scored, scoredID{
			id:    id,
			score: c.behavioralScore(patterns[id], season, occasion, now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// discoveryScores ranks never-worn colognes first, at a fixed score of
// 1.0 in collection order, then worn colognes by descending
// days-since-last-worn with score min(days/saturation, 1.0).
func (c *Config) discoveryScores(order []int64, patterns map[int64]*WearPattern, now time.Time, k int) []scoredID {
	var unworn, worn []scoredID
	for _, id := range order {
		p := patterns[id]
		if p == nil {
			unworn = append(unworn, scoredID{id: id, score: 1.0})
			continue
		}
		days := p.DaysSince(now)
		worn = append(worn, scoredID{
			id:    id,
			score: math.Min(days/c.Behavioral.DiscoverySaturationDays, 1.0),
		})
	}

	// Worn colognes order by neglect, not by the saturated score, so
	// two colognes past saturation still rank by actual gap.
	sort.SliceStable(worn, func(i, j int) bool {
		return patterns[worn[i].id].LastWorn.Before(patterns[worn[j].id].LastWorn)
	})

	scored := append(unworn, worn...)
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
