// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

// LogWear records a wear event for a cologne. Returns ErrNotFound if the
// cologne does not exist.
func (s *Store) LogWear(ctx context.Context, cologneID int64, wornAt time.Time, season models.Season, occasion string, rating *float64) (*models.WearEvent, error) {
	var event *models.WearEvent
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		event, err = tx.AddWear(ctx, cologneID, wornAt, season, occasion, rating)
		return err
	})
	return event, err
}

// AddWear inserts a wear event within the transaction.
func (t *Tx) AddWear(ctx context.Context, cologneID int64, wornAt time.Time, season models.Season, occasion string, rating *float64) (*models.WearEvent, error) {
	var exists int
	err := t.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM colognes WHERE id = ?`, cologneID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check cologne: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var ratingVal any
	if rating != nil {
		ratingVal = *rating
	}

	res, err := t.q.ExecContext(ctx,
		`INSERT INTO wear_history (cologne_id, worn_at, season, occasion, rating)
		 VALUES (?, ?, ?, ?, ?)`,
		cologneID, wornAt.UTC().Format(timeFormat), string(season), occasion, ratingVal)
	if err != nil {
		return nil, fmt.Errorf("insert wear: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("wear id: %w", err)
	}

	return &models.WearEvent{
		ID:        id,
		CologneID: cologneID,
		WornAt:    wornAt.UTC(),
		Season:    season,
		Occasion:  occasion,
		Rating:    rating,
	}, nil
}

// DeleteWearHistory removes every wear event for the cologne.
func (t *Tx) DeleteWearHistory(ctx context.Context, cologneID int64) error {
	if _, err := t.q.ExecContext(ctx,
		`DELETE FROM wear_history WHERE cologne_id = ?`, cologneID); err != nil {
		return fmt.Errorf("delete wear history: %w", err)
	}
	return nil
}

// GetWearHistory returns a cologne's wear events, most recent first.
func (s *Store) GetWearHistory(ctx context.Context, cologneID int64) ([]models.WearEvent, error) {
	return queryWears(ctx, s.db,
		`SELECT id, cologne_id, worn_at, season, occasion, rating
		 FROM wear_history WHERE cologne_id = ? ORDER BY worn_at DESC, id DESC`,
		cologneID)
}

// GetAllWears returns every wear event, most recent first.
func (s *Store) GetAllWears(ctx context.Context) ([]models.WearEvent, error) {
	return queryWears(ctx, s.db,
		`SELECT id, cologne_id, worn_at, season, occasion, rating
		 FROM wear_history ORDER BY worn_at DESC, id DESC`)
}

func queryWears(ctx context.Context, q querier, query string, args ...any) ([]models.WearEvent, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query wears: %w", err)
	}
	defer rows.Close()

	var events []models.WearEvent
	for rows.Next() {
		var (
			e      models.WearEvent
			wornAt string
			season string
			rating sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.CologneID, &wornAt, &season, &e.Occasion, &rating); err != nil {
			return nil, fmt.Errorf("scan wear: %w", err)
		}

		ts, err := time.Parse(timeFormat, wornAt)
		if err != nil {
			return nil, fmt.Errorf("parse worn_at: %w", err)
		}
		e.WornAt = ts
		e.Season = models.Season(season)
		if rating.Valid {
			v := rating.Float64
			e.Rating = &v
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Snapshot bundles the full collection state for model rebuilds and export.
type Snapshot struct {
	Colognes []models.Cologne
	Wears    []models.WearEvent
}

// Snapshot loads every cologne and wear event in one pass.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	colognes, err := s.GetColognes(ctx)
	if err != nil {
		return nil, err
	}
	wears, err := s.GetAllWears(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Colognes: colognes, Wears: wears}, nil
}
