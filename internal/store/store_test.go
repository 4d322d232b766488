// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func floatPtr(v float64) *float64 { return &v }

func TestAddAndGetCologne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddCologne(ctx, "Sauvage", "Dior",
		[]string{"bergamot", "pepper"}, []string{"fresh", "spicy"})
	if err != nil {
		t.Fatalf("AddCologne: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := s.GetCologne(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCologne: %v", err)
	}
	if got.Name != "Sauvage" || got.Brand != "Dior" {
		t.Errorf("got %q/%q, want Sauvage/Dior", got.Name, got.Brand)
	}
	if len(got.Notes) != 2 || got.Notes[0] != "bergamot" || got.Notes[1] != "pepper" {
		t.Errorf("notes = %v, want [bergamot pepper]", got.Notes)
	}
	if len(got.Classifications) != 2 || got.Classifications[0] != "fresh" {
		t.Errorf("classifications = %v", got.Classifications)
	}
}

func TestAddCologneDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddCologne(ctx, "Sauvage", "Dior", nil, nil); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := s.AddCologne(ctx, "Sauvage", "Dior", []string{"citrus"}, nil)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}

	// Same name under another brand is fine.
	if _, err := s.AddCologne(ctx, "Sauvage", "Other House", nil, nil); err != nil {
		t.Errorf("different brand: %v", err)
	}
}

func TestFindByNaturalKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddCologne(ctx, "Aventus", "Creed", []string{"pineapple"}, nil); err != nil {
		t.Fatalf("AddCologne: %v", err)
	}

	found, err := s.FindByNaturalKey(ctx, "Aventus", "Creed")
	if err != nil {
		t.Fatalf("FindByNaturalKey: %v", err)
	}
	if found == nil || found.Name != "Aventus" {
		t.Fatalf("found = %+v", found)
	}

	missing, err := s.FindByNaturalKey(ctx, "Aventus", "Nobody")
	if err != nil {
		t.Fatalf("FindByNaturalKey miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for absent key, got %+v", missing)
	}
}

func TestGetCologneNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetCologne(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWearHistoryNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.AddCologne(ctx, "Bleu", "Chanel", nil, nil)
	if err != nil {
		t.Fatalf("AddCologne: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.LogWear(ctx, c.ID, base.AddDate(0, 0, i), models.SeasonSpring, "work", floatPtr(4))
		if err != nil {
			t.Fatalf("LogWear %d: %v", i, err)
		}
	}

	history, err := s.GetWearHistory(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetWearHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len = %d, want 3", len(history))
	}
	if !history[0].WornAt.After(history[1].WornAt) || !history[1].WornAt.After(history[2].WornAt) {
		t.Errorf("history not newest-first: %v", history)
	}
	if history[0].Rating == nil || *history[0].Rating != 4 {
		t.Errorf("rating = %v, want 4", history[0].Rating)
	}
}

func TestLogWearUnknownCologne(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LogWear(context.Background(), 42, time.Now(), models.SeasonWinter, "", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCologneCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.AddCologne(ctx, "Terre", "Hermes", []string{"vetiver"}, nil)
	if err != nil {
		t.Fatalf("AddCologne: %v", err)
	}
	if _, err := s.LogWear(ctx, c.ID, time.Now(), models.SeasonFall, "office", nil); err != nil {
		t.Fatalf("LogWear: %v", err)
	}

	if err := s.DeleteCologne(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCologne: %v", err)
	}

	wears, err := s.GetAllWears(ctx)
	if err != nil {
		t.Fatalf("GetAllWears: %v", err)
	}
	if len(wears) != 0 {
		t.Errorf("expected cascade delete of wears, got %d", len(wears))
	}

	if err := s.DeleteCologne(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestTxRollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := s.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.CreateCologne(ctx, "Ghost", "Nowhere", nil, nil); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}

	found, err := s.FindByNaturalKey(ctx, "Ghost", "Nowhere")
	if err != nil {
		t.Fatalf("FindByNaturalKey: %v", err)
	}
	if found != nil {
		t.Error("rolled-back cologne should not exist")
	}
}

func TestMergeTagsUnion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.AddCologne(ctx, "Eros", "Versace", []string{"mint", "vanilla"}, []string{"sweet"})
	if err != nil {
		t.Fatalf("AddCologne: %v", err)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.MergeNotes(ctx, c.ID, []string{"vanilla", "tonka"}); err != nil {
			return err
		}
		return tx.MergeClassifications(ctx, c.ID, []string{"sweet", "fresh"})
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	got, err := s.GetCologne(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCologne: %v", err)
	}
	wantNotes := []string{"mint", "vanilla", "tonka"}
	if len(got.Notes) != len(wantNotes) {
		t.Fatalf("notes = %v, want %v", got.Notes, wantNotes)
	}
	for i, n := range wantNotes {
		if got.Notes[i] != n {
			t.Errorf("notes[%d] = %q, want %q", i, got.Notes[i], n)
		}
	}
	if len(got.Classifications) != 2 {
		t.Errorf("classifications = %v, want [sweet fresh]", got.Classifications)
	}
}

func TestReplaceTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.AddCologne(ctx, "Y", "YSL", []string{"apple", "ginger"}, nil)
	if err != nil {
		t.Fatalf("AddCologne: %v", err)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return tx.ReplaceNotes(ctx, c.ID, []string{"sage"})
	})
	if err != nil {
		t.Fatalf("ReplaceNotes: %v", err)
	}

	got, err := s.GetCologne(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCologne: %v", err)
	}
	if len(got.Notes) != 1 || got.Notes[0] != "sage" {
		t.Errorf("notes = %v, want [sage]", got.Notes)
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddCologne(ctx, "A", "House", nil, nil)
	if _, err := s.AddCologne(ctx, "B", "House", nil, nil); err != nil {
		t.Fatalf("AddCologne: %v", err)
	}
	if _, err := s.LogWear(ctx, a.ID, time.Now(), models.SeasonSummer, "casual", nil); err != nil {
		t.Fatalf("LogWear: %v", err)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Colognes) != 2 || len(snap.Wears) != 1 {
		t.Errorf("snapshot = %d colognes, %d wears", len(snap.Colognes), len(snap.Wears))
	}
}

func TestImportAuditTrail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &ImportRecord{
		BatchID:       "batch-1",
		ImportType:    "json",
		Filename:      "collection.json",
		ColognesAdded: 5, ColognesUpdated: 3, WearEventsAdded: 12,
		Success: true,
	}
	if err := s.RecordImport(ctx, rec); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected non-zero audit id")
	}

	fail := &ImportRecord{BatchID: "batch-2", ImportType: "csv", ErrorCount: 3}
	if err := s.RecordImport(ctx, fail); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}

	history, err := s.ListImportHistory(ctx, 10)
	if err != nil {
		t.Fatalf("ListImportHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history len = %d, want 2", len(history))
	}

	stats, err := s.GetImportStatistics(ctx)
	if err != nil {
		t.Fatalf("GetImportStatistics: %v", err)
	}
	if stats.TotalImports != 2 || stats.Successful != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ColognesAdded != 5 || stats.WearEventsAdded != 12 || stats.ErrorCount != 3 {
		t.Errorf("record totals = %+v", stats)
	}

	if err := s.AddImportNotes(ctx, rec.ID, "reviewed"); err != nil {
		t.Fatalf("AddImportNotes: %v", err)
	}
	got, err := s.GetImportRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetImportRecord: %v", err)
	}
	if got.Notes != "reviewed" {
		t.Errorf("notes = %q, want reviewed", got.Notes)
	}

	if err := s.DeleteImportRecord(ctx, fail.ID); err != nil {
		t.Fatalf("DeleteImportRecord: %v", err)
	}
	if err := s.DeleteImportRecord(ctx, fail.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
