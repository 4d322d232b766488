// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package reconcile

import (
	"context"
	"fmt"

	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/store"
)

// Analyzer classifies incoming records as new or conflicting against the
// existing collection.
type Analyzer struct {
	store *store.Store
}

// NewAnalyzer creates an analyzer over the given store.
func NewAnalyzer(s *store.Store) *Analyzer {
	return &Analyzer{store: s}
}

// Analyze compares every incoming record against the store by natural
// key. Records with empty name or brand are silently skipped. A failure
// on one record is recorded and analysis continues; one malformed record
// never aborts the whole run. A document without the "colognes" key
// fails outright with ErrMissingColognes.
func (a *Analyzer) Analyze(ctx context.Context, payload *Payload) (*AnalysisReport, error) {
	if payload == nil || payload.Colognes == nil {
		return nil, ErrMissingColognes
	}

	report := &AnalysisReport{
		New:        []NewRecord{},
		Duplicates: []ConflictRecord{},
		Errors:     []string{},
	}

	for i := range payload.Colognes {
		incoming := &payload.Colognes[i]
		if incoming.blank() {
			continue
		}

		if err := a.analyzeOne(ctx, incoming, report); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("error analyzing %s: %v", incoming.Name, err))
		}
	}

	logging.Debug().
		Int("new", len(report.New)).
		Int("duplicates", len(report.Duplicates)).
		Int("errors", len(report.Errors)).
		Msg("import analysis complete")
	return report, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, incoming *IncomingCologne, report *AnalysisReport) error {
	existing, err := a.store.FindByNaturalKey(ctx, incoming.Name, incoming.Brand)
	if err != nil {
		return err
	}

	if existing == nil {
		report.New = append(report.New, NewRecord{
			Name:            incoming.Name,
			Brand:           incoming.Brand,
			Notes:           incoming.Notes,
			Classifications: incoming.Classifications,
			WearCount:       len(incoming.WearHistory),
		})
		return nil
	}

	var conflicts []ConflictCategory
	if !sameSet(existing.Notes, incoming.Notes) {
		conflicts = append(conflicts, ConflictNotes)
	}
	if !sameSet(existing.Classifications, incoming.Classifications) {
		conflicts = append(conflicts, ConflictClassifications)
	}
	// Existing history alone is never a conflict; only incoming
	// additions trigger the flag.
	if len(incoming.WearHistory) > 0 {
		conflicts = append(conflicts, ConflictWearHistory)
	}

	history, err := a.store.GetWearHistory(ctx, existing.ID)
	if err != nil {
		return err
	}

	report.Duplicates = append(report.Duplicates, ConflictRecord{
		Key:       incoming.Key(),
		Name:      incoming.Name,
		Brand:     incoming.Brand,
		Conflicts: conflicts,
		Existing: ExistingSnapshot{
			ID:              existing.ID,
			Notes:           existing.Notes,
			Classifications: existing.Classifications,
			WearHistory:     history,
		},
		Incoming: *incoming,
	})
	return nil
}

// sameSet compares two tag lists as sets; order and duplicates are
// irrelevant.
func sameSet(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}

	seen := make(map[string]bool, len(b))
	for _, s := range b {
		if !set[s] {
			return false
		}
		seen[s] = true
	}
	return len(set) == len(seen)
}
