// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"strings"

	"github.com/scentwell/scentwell/internal/models"
)

// emptyTagSentinel stands in for colognes without any tags so the
// vectorizer never sees a zero-length document.
const emptyTagSentinel = "unknown"

// tagDocument joins a cologne's note and classification names, in
// insertion order, into one space-separated document.
func tagDocument(c *models.Cologne) string {
	parts := make([]string, 0, len(c.Notes)+len(c.Classifications))
	parts = append(parts, c.Notes...)
	parts = append(parts, c.Classifications...)

	doc := strings.TrimSpace(strings.Join(parts, " "))
	if doc == "" {
		return emptyTagSentinel
	}
	return doc
}

// buildVectors fits a TF-IDF vectorizer across the collection and returns
// one feature vector per cologne. Empty input yields an empty map.
func buildVectors(colognes []models.Cologne) map[int64]featureVector {
	vectors := make(map[int64]featureVector, len(colognes))
	if len(colognes) == 0 {
		return vectors
	}

	docs := make([]string, len(colognes))
	for i := range colognes {
		docs[i] = tagDocument(&colognes[i])
	}

	v := fitVectorizer(docs)
	for i := range colognes {
		vectors[colognes[i].ID] = v.transform(docs[i])
	}
	return vectors
}

// buildPatterns groups wear events by cologne and aggregates each group.
// Colognes with no events get no entry; absence means never worn.
func buildPatterns(wears []models.WearEvent) map[int64]*WearPattern {
	patterns := make(map[int64]*WearPattern)
	for i := range wears {
		w := &wears[i]
		p := patterns[w.CologneID]
		if p == nil {
			p = &WearPattern{
				SeasonCounts:   make(map[models.Season]int),
				OccasionCounts: make(map[string]int),
			}
			patterns[w.CologneID] = p
		}

		p.WearCount++
		if w.Rating != nil {
			p.RatingSum += *w.Rating
			p.RatingCount++
		}
		if w.Season != "" {
			p.SeasonCounts[models.Season(strings.ToLower(string(w.Season)))]++
		}
		if occ := strings.ToLower(strings.TrimSpace(w.Occasion)); occ != "" {
			p.OccasionCounts[occ]++
		}
		if w.WornAt.After(p.LastWorn) {
			p.LastWorn = w.WornAt
		}
		p.WearTimes = append(p.WearTimes, w.WornAt)
	}
	return patterns
}
