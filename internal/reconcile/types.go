// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package reconcile implements import reconciliation: analyzing an
// incoming dataset for collisions against the existing collection and
// applying per-conflict skip, overwrite, or merge resolutions as one
// transactional batch.
package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scentwell/scentwell/internal/models"
)

// ErrMissingColognes reports an import document without the required
// top-level "colognes" key. An explicitly empty array is a valid empty
// batch; an absent key fails the whole request with no effect.
var ErrMissingColognes = errors.New("invalid JSON format: missing 'colognes' key")

// Resolution is the per-conflict policy applied during import.
type Resolution string

// Resolution policies.
const (
	// ResolutionSkip leaves the existing cologne untouched.
	ResolutionSkip Resolution = "skip"

	// ResolutionOverwrite replaces the existing tag sets and wear
	// history with the incoming ones.
	ResolutionOverwrite Resolution = "overwrite"

	// ResolutionMerge unions incoming tags into the existing sets and
	// appends incoming wear history.
	ResolutionMerge Resolution = "merge"
)

// ParseResolution parses a resolution string. Empty input defaults to
// skip.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ResolutionSkip, nil
	case ResolutionSkip:
		return ResolutionSkip, nil
	case ResolutionOverwrite:
		return ResolutionOverwrite, nil
	case ResolutionMerge:
		return ResolutionMerge, nil
	default:
		return "", fmt.Errorf("unknown resolution %q", s)
	}
}

// Payload is the JSON import/export document.
type Payload struct {
	Colognes   []IncomingCologne `json:"colognes"`
	ExportDate string            `json:"export_date,omitempty"`
	Version    string            `json:"version,omitempty"`
}

// IncomingCologne is one cologne record in an import payload. The id is
// carried through from export but ignored on import; identity is the
// (name, brand) natural key.
type IncomingCologne struct {
	ID              int64          `json:"id,omitempty"`
	Name            string         `json:"name"`
	Brand           string         `json:"brand"`
	Notes           []string       `json:"notes"`
	Classifications []string       `json:"classifications"`
	WearHistory     []IncomingWear `json:"wear_history"`
}

// Key returns the natural key for resolution lookup.
func (c *IncomingCologne) Key() string {
	return models.NaturalKey(c.Name, c.Brand)
}

// blank reports whether the record is a template placeholder to be
// silently skipped.
func (c *IncomingCologne) blank() bool {
	return strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Brand) == ""
}

// IncomingWear is one wear record in an import payload.
type IncomingWear struct {
	Date     string   `json:"date"`
	Season   string   `json:"season"`
	Occasion string   `json:"occasion"`
	Rating   *float64 `json:"rating"`
}

// ConflictCategory names an attribute category that differs between an
// existing cologne and an incoming record.
type ConflictCategory string

// Conflict categories.
const (
	ConflictNotes           ConflictCategory = "notes"
	ConflictClassifications ConflictCategory = "classifications"
	ConflictWearHistory     ConflictCategory = "wear_history"
)

// ExistingSnapshot captures the stored side of a conflict for review.
type ExistingSnapshot struct {
	ID              int64              `json:"id"`
	Notes           []string           `json:"notes"`
	Classifications []string           `json:"classifications"`
	WearHistory     []models.WearEvent `json:"wear_history"`
}

// ConflictRecord describes one incoming record that collides with an
// existing cologne. Both sides are included in full so an operator can
// review a complete side-by-side, whatever the conflicting categories.
type ConflictRecord struct {
	Key       string             `json:"key"`
	Name      string             `json:"name"`
	Brand     string             `json:"brand"`
	Conflicts []ConflictCategory `json:"conflicts"`
	Existing  ExistingSnapshot   `json:"existing"`
	Incoming  IncomingCologne    `json:"incoming"`
}

// NewRecord previews an incoming record with no existing match.
type NewRecord struct {
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Notes           []string `json:"notes"`
	Classifications []string `json:"classifications"`
	WearCount       int      `json:"wear_count"`
}

// AnalysisReport is the outcome of duplicate analysis.
type AnalysisReport struct {
	New        []NewRecord      `json:"new"`
	Duplicates []ConflictRecord `json:"duplicates"`
	Errors     []string         `json:"errors"`
}

// Report is the outcome of applying an import batch. Errors carries both
// per-record error strings and informational skip messages.
type Report struct {
	ColognesAdded   int      `json:"colognes_added"`
	ColognesUpdated int      `json:"colognes_updated"`
	WearEventsAdded int      `json:"wear_events_added"`
	Skipped         int      `json:"skipped"`
	Errors          []string `json:"errors"`
	Success         bool     `json:"success"`
}
