// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package models defines the core domain types shared across Scentwell:
// colognes, wear events, seasons, and the API response envelope.
package models

import (
	"strings"
	"time"
)

// Cologne is a tracked fragrance in the collection.
//
// The (Name, Brand) pair is the natural key: the store enforces uniqueness on
// it, and import reconciliation matches incoming records against it. Notes
// and Classifications preserve insertion order; set semantics (used during
// conflict analysis and merging) are applied by the consumers that need them.
type Cologne struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name" validate:"required,max=200"`
	Brand           string    `json:"brand" validate:"required,max=200"`
	Notes           []string  `json:"notes"`
	Classifications []string  `json:"classifications"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// Key returns the natural key for duplicate detection, formatted the same
// way import resolutions address colognes: "name|brand".
func (c *Cologne) Key() string {
	return NaturalKey(c.Name, c.Brand)
}

// NaturalKey joins a name and brand into the canonical duplicate-detection key.
func NaturalKey(name, brand string) string {
	return name + "|" + brand
}

// WearEvent is one logged use of a cologne. Events are immutable after
// creation and are deleted only when their owning cologne is deleted.
type WearEvent struct {
	ID        int64     `json:"id"`
	CologneID int64     `json:"cologne_id"`
	WornAt    time.Time `json:"worn_at"`
	Season    Season    `json:"season" validate:"required,season"`
	Occasion  string    `json:"occasion" validate:"required,max=100"`
	// Rating is 1-5, fractional allowed; nil means unrated.
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// Season is one of the four calendar seasons used for wear tagging and
// seasonal scoring.
type Season string

// Season values.
const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// Valid reports whether s is a recognized season tag.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter:
		return true
	}
	return false
}

// String returns the season tag.
func (s Season) String() string {
	return string(s)
}

// ParseSeason normalizes a free-form season string. Returns the normalized
// season and whether it was recognized.
func ParseSeason(s string) (Season, bool) {
	season := Season(strings.ToLower(strings.TrimSpace(s)))
	return season, season.Valid()
}

// SeasonForMonth maps a calendar month to its season:
// Dec/Jan/Feb winter, Mar/Apr/May spring, Jun/Jul/Aug summer, Sep/Oct/Nov fall.
func SeasonForMonth(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// CurrentSeason returns the season for the given instant.
func CurrentSeason(now time.Time) Season {
	return SeasonForMonth(now.Month())
}
