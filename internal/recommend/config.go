// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import "fmt"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the relative contribution of each scoring signal.
	Weights Weights `json:"weights"`

	// Behavioral contains parameters for behavioral scoring.
	Behavioral BehavioralConfig `json:"behavioral"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`
}

// Weights defines the hybrid blend. Scores are combined as-is; the weights
// are not renormalized, so hybrid scores may exceed 1.0 when both signals
// are strong.
type Weights struct {
	// Content is the weight for content similarity.
	// Default: 0.4.
	Content float64 `json:"content"`

	// Behavioral is the weight for behavioral scoring.
	// Default: 0.6.
	Behavioral float64 `json:"behavioral"`
}

// BehavioralConfig contains parameters for behavioral scoring.
type BehavioralConfig struct {
	// SeasonWeight scales the seasonal frequency contribution.
	// Default: 0.5.
	SeasonWeight float64 `json:"season_weight"`

	// OccasionWeight scales the occasion frequency contribution.
	// Default: 0.3.
	OccasionWeight float64 `json:"occasion_weight"`

	// RecencyWeight scales the recency contribution. Never-worn colognes
	// receive this full weight.
	// Default: 0.4.
	RecencyWeight float64 `json:"recency_weight"`

	// RecencySaturationDays is the gap, in days, at which the recency
	// contribution for a worn cologne reaches its maximum.
	// Default: 30.
	RecencySaturationDays float64 `json:"recency_saturation_days"`

	// DiscoverySaturationDays is the gap at which a worn cologne's
	// discovery score reaches 1.0.
	// Default: 60.
	DiscoverySaturationDays float64 `json:"discovery_saturation_days"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of recommendations to return.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 50.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Content:    0.4,
			Behavioral: 0.6,
		},
		Behavioral: BehavioralConfig{
			SeasonWeight:            0.5,
			OccasionWeight:          0.3,
			RecencyWeight:           0.4,
			RecencySaturationDays:   30,
			DiscoverySaturationDays: 60,
		},
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Content < 0 {
		return fmt.Errorf("weights.content must be non-negative, got %f", c.Weights.Content)
	}
	if c.Weights.Behavioral < 0 {
		return fmt.Errorf("weights.behavioral must be non-negative, got %f", c.Weights.Behavioral)
	}
	if c.Weights.Content+c.Weights.Behavioral == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}

	if c.Behavioral.SeasonWeight < 0 {
		return fmt.Errorf("behavioral.season_weight must be non-negative, got %f", c.Behavioral.SeasonWeight)
	}
	if c.Behavioral.OccasionWeight < 0 {
		return fmt.Errorf("behavioral.occasion_weight must be non-negative, got %f", c.Behavioral.OccasionWeight)
	}
	if c.Behavioral.RecencyWeight < 0 {
		return fmt.Errorf("behavioral.recency_weight must be non-negative, got %f", c.Behavioral.RecencyWeight)
	}
	if c.Behavioral.RecencySaturationDays <= 0 {
		return fmt.Errorf("behavioral.recency_saturation_days must be positive, got %f", c.Behavioral.RecencySaturationDays)
	}
	if c.Behavioral.DiscoverySaturationDays <= 0 {
		return fmt.Errorf("behavioral.discovery_saturation_days must be positive, got %f", c.Behavioral.DiscoverySaturationDays)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
