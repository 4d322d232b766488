// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ImportRecord is one row of the import audit trail.
type ImportRecord struct {
	ID              int64     `json:"id"`
	BatchID         string    `json:"batch_id"`
	ImportType      string    `json:"import_type"`
	Filename        string    `json:"filename,omitempty"`
	ColognesAdded   int       `json:"colognes_added"`
	ColognesUpdated int       `json:"colognes_updated"`
	WearEventsAdded int       `json:"wear_events_added"`
	ErrorCount      int       `json:"error_count"`
	Success         bool      `json:"success"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ImportStatistics aggregates the audit trail.
type ImportStatistics struct {
	TotalImports    int `json:"total_imports"`
	Successful      int `json:"successful"`
	Failed          int `json:"failed"`
	ColognesAdded   int `json:"colognes_added"`
	ColognesUpdated int `json:"colognes_updated"`
	WearEventsAdded int `json:"wear_events_added"`
	ErrorCount      int `json:"error_count"`
}

// RecordImport appends a row to the import audit trail.
func (s *Store) RecordImport(ctx context.Context, rec *ImportRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO import_history
		 (batch_id, import_type, filename, colognes_added, colognes_updated,
		  wear_events_added, error_count, success, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BatchID, rec.ImportType, rec.Filename,
		rec.ColognesAdded, rec.ColognesUpdated, rec.WearEventsAdded,
		rec.ErrorCount, rec.Success, rec.Notes, rec.CreatedAt.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("import record id: %w", err)
	}
	return nil
}

const importRecordColumns = `id, batch_id, import_type, filename,
	colognes_added, colognes_updated, wear_events_added, error_count,
	success, notes, created_at`

func scanImportRecord(row rowScanner) (*ImportRecord, error) {
	var (
		rec       ImportRecord
		filename  sql.NullString
		notes     sql.NullString
		createdAt string
	)
	err := row.Scan(&rec.ID, &rec.BatchID, &rec.ImportType, &filename,
		&rec.ColognesAdded, &rec.ColognesUpdated, &rec.WearEventsAdded,
		&rec.ErrorCount, &rec.Success, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.Filename = filename.String
	rec.Notes = notes.String
	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}

// ListImportHistory returns audit rows, most recent first.
func (s *Store) ListImportHistory(ctx context.Context, limit int) ([]ImportRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+importRecordColumns+`
		 FROM import_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import history: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		rec, err := scanImportRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// GetImportRecord returns one audit row by id.
func (s *Store) GetImportRecord(ctx context.Context, id int64) (*ImportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+importRecordColumns+` FROM import_history WHERE id = ?`, id)

	rec, err := scanImportRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get import record: %w", err)
	}
	return rec, nil
}

// GetImportStatistics aggregates totals over the whole audit trail.
func (s *Store) GetImportStatistics(ctx context.Context) (*ImportStatistics, error) {
	var stats ImportStatistics
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
		        COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
		        COALESCE(SUM(colognes_added), 0),
		        COALESCE(SUM(colognes_updated), 0),
		        COALESCE(SUM(wear_events_added), 0),
		        COALESCE(SUM(error_count), 0)
		 FROM import_history`).Scan(
		&stats.TotalImports, &stats.Successful, &stats.Failed,
		&stats.ColognesAdded, &stats.ColognesUpdated,
		&stats.WearEventsAdded, &stats.ErrorCount)
	if err != nil {
		return nil, fmt.Errorf("import statistics: %w", err)
	}
	return &stats, nil
}

// DeleteImportRecord removes one audit row. Returns ErrNotFound if absent.
func (s *Store) DeleteImportRecord(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM import_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete import record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete import record: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddImportNotes sets the operator notes on one audit row.
func (s *Store) AddImportNotes(ctx context.Context, id int64, notes string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE import_history SET notes = ? WHERE id = ?`, notes, id)
	if err != nil {
		return fmt.Errorf("update import notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update import notes: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
