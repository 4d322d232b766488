// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"fmt"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

// seasonalFitThreshold is the season frequency above which a cologne is
// called out as a good fit for the season.
const seasonalFitThreshold = 0.3

// reasons builds the human-readable explanation for one recommendation.
// A nil pattern means never worn.
func (e *Engine) reasons(pattern *WearPattern, season models.Season, now time.Time) []string {
	var reasons []string

	if pattern == nil {
		reasons = append(reasons, "never worn before")
	} else {
		switch avg := pattern.AvgRating(); {
		case avg > 4:
			reasons = append(reasons, "highly rated by you")
		case avg > 3:
			reasons = append(reasons, "rated positively")
		}

		if pattern.DaysSince(now) > e.cfg.Behavioral.RecencySaturationDays {
			reasons = append(reasons, "haven't worn recently")
		}

		if pattern.SeasonFreq(season) > seasonalFitThreshold {
			reasons = append(reasons, fmt.Sprintf("good for %s", season))
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "new discovery")
	}
	return reasons
}
