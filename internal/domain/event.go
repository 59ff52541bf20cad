package domain

import "time"

// RawEvent is a progress report exactly as an upstream channel produced it.
// Field names vary by channel; only the curve normalizer interprets them.
type RawEvent map[string]any

// ProgressEvent is a normalized progress report.
type ProgressEvent struct {
	// ID is the persisted identity, empty when the upstream record had none.
	ID        string
	ServiceID string

	// Day is the calendar-day bucket (UTC midnight of the local day).
	Day time.Time
	// Timestamp is the exact instant, used for same-day ordering and the
	// dedupe minute bucket.
	Timestamp time.Time
	// CreatedAt is when the upstream record was created. Zero when the
	// record did not say; Created then falls back to Timestamp.
	CreatedAt time.Time

	Percent *float64
	Items   map[string]float64

	Author      string
	Mode        EventMode
	Description string
}

// HasPercent reports whether the event carries a usable completion value.
func (e *ProgressEvent) HasPercent() bool {
	return e.Percent != nil
}

// PercentOr returns the event percent, or fallback when absent.
func (e *ProgressEvent) PercentOr(fallback float64) float64 {
	if e.Percent == nil {
		return fallback
	}
	return *e.Percent
}

// Created is the instant deduplication orders and tie-breaks by.
func (e *ProgressEvent) Created() time.Time {
	if e.CreatedAt.IsZero() {
		return e.Timestamp
	}
	return e.CreatedAt
}

// ProgressOverlay is a manual percentage persisted on top of checklist state.
type ProgressOverlay struct {
	ServiceID  string
	Percent    float64
	Source     ProgressSource
	RecordedAt time.Time
}
