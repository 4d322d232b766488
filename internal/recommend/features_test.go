// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/scentwell/scentwell/internal/models"
)

func TestTagDocument(t *testing.T) {
	c := models.Cologne{
		Notes:           []string{"bergamot", "pepper"},
		Classifications: []string{"fresh"},
	}
	if got := tagDocument(&c); got != "bergamot pepper fresh" {
		t.Errorf("tagDocument = %q", got)
	}

	empty := models.Cologne{}
	if got := tagDocument(&empty); got != emptyTagSentinel {
		t.Errorf("empty cologne document = %q, want %q", got, emptyTagSentinel)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Bergamot and Pepper", []string{"bergamot", "pepper"}},
		{"oud-wood, vanilla", []string{"oud", "wood", "vanilla"}},
		{"a of the", nil},
		{"x y z", nil}, // single-character tokens dropped
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestVectorsAreNormalized(t *testing.T) {
	vectors := buildVectors(testColognes())
	for id, vec := range vectors {
		if vec == nil {
			continue
		}
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
			t.Errorf("cologne %d: vector norm = %f, want 1", id, math.Sqrt(norm))
		}
	}
}

func TestCosineDisjointVocabulary(t *testing.T) {
	vectors := buildVectors(testColognes())
	// Oud Wood and Acqua di Gio share no tags.
	if sim := cosine(vectors[3], vectors[4]); sim != 0 {
		t.Errorf("cosine of disjoint colognes = %f, want 0", sim)
	}
}

func TestCosineIdenticalTags(t *testing.T) {
	colognes := []models.Cologne{
		{ID: 1, Notes: []string{"rose", "oud"}},
		{ID: 2, Notes: []string{"rose", "oud"}},
	}
	vectors := buildVectors(colognes)
	if sim := cosine(vectors[1], vectors[2]); math.Abs(sim-1) > 1e-9 {
		t.Errorf("cosine of identical tag sets = %f, want 1", sim)
	}
}

func TestBuildVectorsEmptyCollection(t *testing.T) {
	if vectors := buildVectors(nil); len(vectors) != 0 {
		t.Errorf("expected empty vector map, got %d entries", len(vectors))
	}
}

func TestBuildPatternsAbsentMeansNeverWorn(t *testing.T) {
	patterns := buildPatterns([]models.WearEvent{
		wear(1, 3, models.SeasonSummer, "Work", floatPtr(4.5)),
	})

	if patterns[2] != nil {
		t.Error("cologne without events must be absent from pattern map")
	}

	p := patterns[1]
	if p == nil {
		t.Fatal("expected pattern for cologne 1")
	}
	if p.OccasionCounts["work"] != 1 {
		t.Errorf("occasion keys must be lower-cased: %v", p.OccasionCounts)
	}
}

func TestBuildPatternsTracksLatestWear(t *testing.T) {
	patterns := buildPatterns([]models.WearEvent{
		wear(1, 30, models.SeasonSpring, "casual", nil),
		wear(1, 5, models.SeasonSummer, "casual", nil),
		wear(1, 60, models.SeasonWinter, "casual", nil),
	})

	p := patterns[1]
	want := testNow.AddDate(0, 0, -5)
	if !p.LastWorn.Equal(want) {
		t.Errorf("LastWorn = %v, want %v", p.LastWorn, want)
	}
	if math.Abs(p.DaysSince(testNow)-5) > 1e-9 {
		t.Errorf("DaysSince = %f, want 5", p.DaysSince(testNow))
	}
}

func TestReasons(t *testing.T) {
	e := NewEngine(nil)
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pattern *WearPattern
		want    []string
	}{
		{
			name:    "never worn",
			pattern: nil,
			want:    []string{"never worn before"},
		},
		{
			name: "highly rated and neglected",
			pattern: &WearPattern{
				WearCount: 2, RatingSum: 9, RatingCount: 2,
				SeasonCounts: map[models.Season]int{},
				LastWorn:     now.AddDate(0, 0, -45),
			},
			want: []string{"highly rated by you", "haven't worn recently"},
		},
		{
			name: "seasonal fit",
			pattern: &WearPattern{
				WearCount:    2,
				SeasonCounts: map[models.Season]int{models.SeasonWinter: 2},
				LastWorn:     now.AddDate(0, 0, -2),
			},
			want: []string{"good for winter"},
		},
		{
			name: "nothing notable",
			pattern: &WearPattern{
				WearCount:    1,
				SeasonCounts: map[models.Season]int{models.SeasonSummer: 1},
				LastWorn:     now.AddDate(0, 0, -1),
			},
			want: []string{"new discovery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.reasons(tt.pattern, models.SeasonWinter, now)
			if len(got) != len(tt.want) {
				t.Fatalf("reasons = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("reasons[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative content weight", func(c *Config) { c.Weights.Content = -1 }, true},
		{"all weights zero", func(c *Config) { c.Weights = Weights{} }, true},
		{"zero recency saturation", func(c *Config) { c.Behavioral.RecencySaturationDays = 0 }, true},
		{"zero default k", func(c *Config) { c.Limits.DefaultK = 0 }, true},
		{"max k below default", func(c *Config) { c.Limits.MaxK = 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
