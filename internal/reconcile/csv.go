// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package reconcile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/scentwell/scentwell/internal/store"
)

// csvColumns are the recognized header names for the CSV import path.
var csvColumns = []string{"name", "brand", "notes", "classifications"}

// ImportCSV reads a simple CSV collection file and imports it. Columns:
// name, brand, notes (semicolon-separated), classifications
// (semicolon-separated). The first row is the header. Rows missing name
// or brand are skipped; existing (name, brand) matches are always
// skipped on this path, with no resolution choice.
func (r *Reconciler) ImportCSV(ctx context.Context, src io.Reader, filename string) (*Report, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range csvColumns[:2] {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV missing required column %q", required)
		}
	}

	payload := &Payload{Colognes: []IncomingCologne{}}
	var rowErrors []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("malformed CSV row: %v", err))
			continue
		}

		payload.Colognes = append(payload.Colognes, IncomingCologne{
			Name:            csvField(row, columns, "name"),
			Brand:           csvField(row, columns, "brand"),
			Notes:           splitTags(csvField(row, columns, "notes")),
			Classifications: splitTags(csvField(row, columns, "classifications")),
		})
	}

	return r.applyCSV(ctx, payload, rowErrors, filename)
}

// applyCSV runs the assembled payload with every duplicate skipped.
// rowErrors collected during parsing are carried into the report before
// the audit write so the audit trail sees the full error count.
func (r *Reconciler) applyCSV(ctx context.Context, payload *Payload, rowErrors []string, filename string) (*Report, error) {
	report := &Report{Errors: append([]string{}, rowErrors...)}

	err := r.store.WithTx(ctx, func(tx *store.Tx) error {
		for i := range payload.Colognes {
			incoming := &payload.Colognes[i]
			if incoming.blank() {
				continue
			}
			// nil resolutions: every existing match defaults to skip.
			if err := r.applyOne(ctx, tx, incoming, nil, report); err != nil {
				return err
			}
		}
		return nil
	})

	report.Success = err == nil
	if err != nil {
		report.ColognesAdded = 0
		report.ColognesUpdated = 0
		report.WearEventsAdded = 0
	}

	r.audit(ctx, report, "csv", filename)

	if err != nil {
		return report, fmt.Errorf("CSV import failed: %w", err)
	}
	return report, nil
}

func csvField(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// splitTags splits a semicolon-separated tag field, trimming whitespace
// and dropping empty entries.
func splitTags(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ";")
	tags := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
