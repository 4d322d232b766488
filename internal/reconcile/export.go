// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package reconcile

import (
	"context"
	"time"

	"github.com/scentwell/scentwell/internal/store"
)

// exportVersion identifies the payload format written by Export.
const exportVersion = "1.0"

// Export serializes the whole collection into an import-compatible
// payload. Wear histories are most recent first.
func Export(ctx context.Context, s *store.Store) (*Payload, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	wearsByID := make(map[int64][]IncomingWear)
	for _, w := range snap.Wears {
		wearsByID[w.CologneID] = append(wearsByID[w.CologneID], IncomingWear{
			Date:     w.WornAt.UTC().Format(time.RFC3339),
			Season:   string(w.Season),
			Occasion: w.Occasion,
			Rating:   w.Rating,
		})
	}

	payload := &Payload{
		Colognes:   make([]IncomingCologne, 0, len(snap.Colognes)),
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Version:    exportVersion,
	}
	for i := range snap.Colognes {
		c := &snap.Colognes[i]
		payload.Colognes = append(payload.Colognes, IncomingCologne{
			ID:              c.ID,
			Name:            c.Name,
			Brand:           c.Brand,
			Notes:           c.Notes,
			Classifications: c.Classifications,
			WearHistory:     wearsByID[c.ID],
		})
	}
	return payload, nil
}
