// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import "sort"

// scoredID pairs a cologne id with a score during ranking.
type scoredID struct {
	id    int64
	score float64
}

// contentScores ranks every cologne against the target by cosine
// similarity, excluding the target itself and anything with similarity 0
// or below. Returns at most k entries; order iterates colognes in stable
// collection order so ties break deterministically. An unknown target
// yields an empty list.
func contentScores(targetID int64, order []int64, vectors map[int64]featureVector, k int) []scoredID {
	target, ok := vectors[targetID]
	if !ok || target == nil {
		return nil
	}

	scored := make([]scoredID, 0, len(order))
	for _, id := range order {
		if id == targetID {
			continue
		}
		sim := cosine(target, vectors[id])
		if sim <= 0 {
			continue
		}
		scored = append(scored, scoredID{id: id, score: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
