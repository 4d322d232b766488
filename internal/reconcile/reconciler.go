// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/metrics"
	"github.com/scentwell/scentwell/internal/models"
	"github.com/scentwell/scentwell/internal/store"
)

// Reconciler applies import batches against the store.
type Reconciler struct {
	store *store.Store
}

// NewReconciler creates a reconciler over the given store.
func NewReconciler(s *store.Store) *Reconciler {
	return &Reconciler{store: s}
}

// wearDateLayouts are accepted timestamp formats for incoming wear
// records, tried in order. RFC 3339 covers the trailing-"Z" notation.
var wearDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseWearDate parses an incoming wear timestamp.
func parseWearDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range wearDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// Apply runs one import batch as a single transaction. Resolutions map
// natural keys to policies; keys absent from the map default to skip.
// Per-record defects (bad dates, invalid seasons) are recorded in the
// report and skipped without aborting the batch; only errors escaping
// the per-record handling roll the whole batch back.
func (r *Reconciler) Apply(ctx context.Context, payload *Payload, resolutions map[string]Resolution, filename string) (*Report, error) {
	// An absent "colognes" key is a malformed document, not an empty
	// batch. Fail before touching the store or the audit trail.
	if payload == nil || payload.Colognes == nil {
		report := &Report{Errors: []string{ErrMissingColognes.Error()}}
		return report, ErrMissingColognes
	}

	report := &Report{Errors: []string{}}

	err := r.store.WithTx(ctx, func(tx *store.Tx) error {
		for i := range payload.Colognes {
			incoming := &payload.Colognes[i]
			if incoming.blank() {
				continue
			}
			if err := r.applyOne(ctx, tx, incoming, resolutions, report); err != nil {
				return err
			}
		}
		return nil
	})

	report.Success = err == nil
	if err != nil {
		// Nothing persisted; mutation counts would be misleading.
		report.ColognesAdded = 0
		report.ColognesUpdated = 0
		report.WearEventsAdded = 0
	}
	r.audit(ctx, report, "json", filename)

	if err != nil {
		return report, fmt.Errorf("import batch failed: %w", err)
	}

	logging.Info().
		Int("added", report.ColognesAdded).
		Int("updated", report.ColognesUpdated).
		Int("wear_events", report.WearEventsAdded).
		Int("skipped", report.Skipped).
		Int("errors", len(report.Errors)).
		Msg("import batch applied")
	return report, nil
}

func (r *Reconciler) applyOne(ctx context.Context, tx *store.Tx, incoming *IncomingCologne, resolutions map[string]Resolution, report *Report) error {
	existing, err := tx.FindByNaturalKey(ctx, incoming.Name, incoming.Brand)
	if err != nil {
		return err
	}

	if existing == nil {
		created, err := tx.CreateCologne(ctx, incoming.Name, incoming.Brand,
			incoming.Notes, incoming.Classifications)
		if err != nil {
			return err
		}
		report.ColognesAdded++
		return r.importWears(ctx, tx, created.ID, incoming, report)
	}

	resolution := resolutions[incoming.Key()]
	if resolution == "" {
		resolution = ResolutionSkip
	}

	switch resolution {
	case ResolutionSkip:
		report.Skipped++
		report.Errors = append(report.Errors,
			fmt.Sprintf("%s by %s already exists, skipping", incoming.Name, incoming.Brand))
		return nil

	case ResolutionOverwrite:
		if err := tx.ReplaceNotes(ctx, existing.ID, incoming.Notes); err != nil {
			return err
		}
		if err := tx.ReplaceClassifications(ctx, existing.ID, incoming.Classifications); err != nil {
			return err
		}
		if err := tx.DeleteWearHistory(ctx, existing.ID); err != nil {
			return err
		}
		report.ColognesUpdated++
		return r.importWears(ctx, tx, existing.ID, incoming, report)

	case ResolutionMerge:
		if err := tx.MergeNotes(ctx, existing.ID, incoming.Notes); err != nil {
			return err
		}
		if err := tx.MergeClassifications(ctx, existing.ID, incoming.Classifications); err != nil {
			return err
		}
		report.ColognesUpdated++
		return r.importWears(ctx, tx, existing.ID, incoming, report)

	default:
		return fmt.Errorf("unknown resolution %q for %s", resolution, incoming.Key())
	}
}

// importWears imports an incoming record's wear history for cologneID.
// Each record parses independently; a bad record is reported and skipped
// while the rest of the history still imports.
func (r *Reconciler) importWears(ctx context.Context, tx *store.Tx, cologneID int64, incoming *IncomingCologne, report *Report) error {
	for _, w := range incoming.WearHistory {
		wornAt, err := parseWearDate(w.Date)
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("error importing wear history for %s: %v", incoming.Name, err))
			continue
		}

		season, ok := models.ParseSeason(w.Season)
		if !ok {
			if strings.TrimSpace(w.Season) != "" {
				report.Errors = append(report.Errors,
					fmt.Sprintf("error importing wear history for %s: invalid season %q", incoming.Name, w.Season))
				continue
			}
			// Absent season derives from the wear month.
			season = models.SeasonForMonth(wornAt.Month())
		}

		if _, err := tx.AddWear(ctx, cologneID, wornAt, season, w.Occasion, w.Rating); err != nil {
			return err
		}
		report.WearEventsAdded++
	}
	return nil
}

// audit records the batch in the import audit trail and metrics. Audit
// failures are logged, never surfaced; the import outcome stands on its
// own.
func (r *Reconciler) audit(ctx context.Context, report *Report, format, filename string) {
	metrics.RecordImportBatch(format, report.Success,
		report.ColognesAdded, report.ColognesUpdated, report.Skipped, len(report.Errors))

	rec := &store.ImportRecord{
		BatchID:         uuid.NewString(),
		ImportType:      format,
		Filename:        filename,
		ColognesAdded:   report.ColognesAdded,
		ColognesUpdated: report.ColognesUpdated,
		WearEventsAdded: report.WearEventsAdded,
		ErrorCount:      len(report.Errors),
		Success:         report.Success,
	}
	if err := r.store.RecordImport(ctx, rec); err != nil {
		logging.Warn().Err(err).Msg("failed to record import audit entry")
	}
}
