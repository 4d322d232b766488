// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package recommend implements the cologne recommendation engine.
//
// The engine blends two signals:
//
//   - Content similarity: colognes are vectorized with TF-IDF over their
//     notes and classifications, and compared by cosine similarity.
//   - Behavioral scoring: wear history drives per-cologne scores from
//     average rating, seasonal and occasion frequency, and recency.
//
// Hybrid recommendations combine both (0.4 content, 0.6 behavioral).
// Seasonal mode ranks by fit for the current season; discovery mode
// surfaces neglected and never-worn colognes.
//
// The engine holds an immutable model snapshot that is rebuilt from a
// full collection snapshot and swapped atomically, so reads never block
// on a rebuild.
package recommend
