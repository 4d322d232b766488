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
	"strings"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

// tagKind selects which tag relation a helper operates on. The table names
// are compile-time constants, never caller input.
type tagKind struct {
	tagTable  string
	joinTable string
	joinCol   string
}

var (
	noteKind = tagKind{
		tagTable:  "notes",
		joinTable: "cologne_notes",
		joinCol:   "note_id",
	}
	classificationKind = tagKind{
		tagTable:  "classifications",
		joinTable: "cologne_classifications",
		joinCol:   "classification_id",
	}
)

// AddCologne creates a new cologne with its tag lists. Returns ErrDuplicate
// if a cologne with the same (name, brand) already exists.
func (s *Store) AddCologne(ctx context.Context, name, brand string, notes, classifications []string) (*models.Cologne, error) {
	var created *models.Cologne
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		created, err = tx.CreateCologne(ctx, name, brand, notes, classifications)
		return err
	})
	return created, err
}

// CreateCologne inserts a cologne and its tags within the transaction.
func (t *Tx) CreateCologne(ctx context.Context, name, brand string, notes, classifications []string) (*models.Cologne, error) {
	now := time.Now().UTC()
	res, err := t.q.ExecContext(ctx,
		`INSERT INTO colognes (name, brand, created_at) VALUES (?, ?, ?)`,
		name, brand, now.Format(timeFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert cologne: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("cologne id: %w", err)
	}

	if err := setTags(ctx, t.q, id, noteKind, notes, true); err != nil {
		return nil, err
	}
	if err := setTags(ctx, t.q, id, classificationKind, classifications, true); err != nil {
		return nil, err
	}

	return &models.Cologne{
		ID:              id,
		Name:            name,
		Brand:           brand,
		Notes:           append([]string(nil), notes...),
		Classifications: append([]string(nil), classifications...),
		CreatedAt:       now,
	}, nil
}

// GetColognes returns every cologne with its tag lists, ordered by id.
func (s *Store) GetColognes(ctx context.Context) ([]models.Cologne, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, brand, created_at FROM colognes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query colognes: %w", err)
	}
	defer rows.Close()

	var colognes []models.Cologne
	for rows.Next() {
		c, err := scanCologne(rows)
		if err != nil {
			return nil, err
		}
		colognes = append(colognes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate colognes: %w", err)
	}

	for i := range colognes {
		if err := loadCologneTags(ctx, s.db, &colognes[i]); err != nil {
			return nil, err
		}
	}

	return colognes, nil
}

// GetCologne returns one cologne by id. Returns ErrNotFound if absent.
func (s *Store) GetCologne(ctx context.Context, id int64) (*models.Cologne, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, brand, created_at FROM colognes WHERE id = ?`, id)

	c, err := scanCologne(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := loadCologneTags(ctx, s.db, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByNaturalKey looks up a cologne by exact (name, brand). Returns
// (nil, nil) when no cologne matches; duplicate analysis treats that as
// "new".
func (s *Store) FindByNaturalKey(ctx context.Context, name, brand string) (*models.Cologne, error) {
	return findByNaturalKey(ctx, s.db, name, brand)
}

// FindByNaturalKey is the transactional variant used during reconciliation.
func (t *Tx) FindByNaturalKey(ctx context.Context, name, brand string) (*models.Cologne, error) {
	return findByNaturalKey(ctx, t.q, name, brand)
}

func findByNaturalKey(ctx context.Context, q querier, name, brand string) (*models.Cologne, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, brand, created_at FROM colognes WHERE name = ? AND brand = ?`,
		name, brand)

	c, err := scanCologne(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := loadCologneTags(ctx, q, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCologne removes a cologne; its wear history and tag links cascade.
func (s *Store) DeleteCologne(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM colognes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cologne: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cologne: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceNotes replaces the cologne's note set with exactly names.
func (t *Tx) ReplaceNotes(ctx context.Context, cologneID int64, names []string) error {
	return setTags(ctx, t.q, cologneID, noteKind, names, true)
}

// ReplaceClassifications replaces the cologne's classification set.
func (t *Tx) ReplaceClassifications(ctx context.Context, cologneID int64, names []string) error {
	return setTags(ctx, t.q, cologneID, classificationKind, names, true)
}

// MergeNotes unions names into the cologne's note set. Existing notes are
// never removed; new names append after them.
func (t *Tx) MergeNotes(ctx context.Context, cologneID int64, names []string) error {
	return setTags(ctx, t.q, cologneID, noteKind, names, false)
}

// MergeClassifications unions names into the classification set.
func (t *Tx) MergeClassifications(ctx context.Context, cologneID int64, names []string) error {
	return setTags(ctx, t.q, cologneID, classificationKind, names, false)
}

// setTags writes a cologne's tag list. With replace, the existing links are
// cleared first and names become the whole set; without, only names not
// already linked are appended.
func setTags(ctx context.Context, q querier, cologneID int64, kind tagKind, names []string, replace bool) error {
	if replace {
		//nolint:gosec // joinTable is a compile-time constant
		if _, err := q.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE cologne_id = ?`, kind.joinTable), cologneID); err != nil {
			return fmt.Errorf("clear %s: %w", kind.joinTable, err)
		}
	}

	existing := make(map[string]bool)
	position := 0
	if !replace {
		current, err := tagNames(ctx, q, cologneID, kind)
		if err != nil {
			return err
		}
		for _, name := range current {
			existing[name] = true
		}
		position = len(current)
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || existing[name] {
			continue
		}
		existing[name] = true

		tagID, err := ensureTag(ctx, q, kind, name)
		if err != nil {
			return err
		}

		//nolint:gosec // join table and column are compile-time constants
		_, err = q.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (cologne_id, %s, position) VALUES (?, ?, ?)`,
				kind.joinTable, kind.joinCol),
			cologneID, tagID, position)
		if err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
		position++
	}

	return nil
}

// ensureTag returns the id of the named tag, creating it if needed.
func ensureTag(ctx context.Context, q querier, kind tagKind, name string) (int64, error) {
	var id int64
	//nolint:gosec // tag table is a compile-time constant
	err := q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, kind.tagTable), name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup tag %q: %w", name, err)
	}

	//nolint:gosec // tag table is a compile-time constant
	res, err := q.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, kind.tagTable), name)
	if err != nil {
		return 0, fmt.Errorf("insert tag %q: %w", name, err)
	}
	return res.LastInsertId()
}

// tagNames returns a cologne's tag names in insertion order.
func tagNames(ctx context.Context, q querier, cologneID int64, kind tagKind) ([]string, error) {
	//nolint:gosec // table names are compile-time constants
	rows, err := q.QueryContext(ctx,
		fmt.Sprintf(`SELECT t.name FROM %s j JOIN %s t ON t.id = j.%s
			WHERE j.cologne_id = ? ORDER BY j.position`,
			kind.joinTable, kind.tagTable, kind.joinCol),
		cologneID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind.joinTable, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// loadCologneTags populates a cologne's Notes and Classifications.
func loadCologneTags(ctx context.Context, q querier, c *models.Cologne) error {
	notes, err := tagNames(ctx, q, c.ID, noteKind)
	if err != nil {
		return err
	}
	classifications, err := tagNames(ctx, q, c.ID, classificationKind)
	if err != nil {
		return err
	}
	c.Notes = notes
	c.Classifications = classifications
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCologne scans the fixed cologne columns.
func scanCologne(row rowScanner) (*models.Cologne, error) {
	var (
		c         models.Cologne
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Brand, &createdAt); err != nil {
		return nil, err
	}

	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	c.CreatedAt = ts
	return &c, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
