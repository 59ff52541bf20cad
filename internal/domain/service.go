package domain

import "time"

// Service is a single maintenance service with its planned schedule.
// TotalHours is the weight used by every hours-weighted aggregate.
type Service struct {
	ID           string
	SubpackageID string
	// Code is a short human-facing reference such as "CIV-012". Optional.
	Code       string
	Name       string
	TotalHours float64

	// Inclusive calendar days, canonical UTC midnight.
	PlannedStart *time.Time
	PlannedEnd   *time.Time

	// PlannedDailySeries holds one planned percentage per day of the planned range.
	// It is only honored when its length matches the inclusive day count.
	PlannedDailySeries []float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRange reports whether both planned bounds are set and ordered.
func (s *Service) HasRange() bool {
	return s.PlannedStart != nil && s.PlannedEnd != nil && !s.PlannedEnd.Before(*s.PlannedStart)
}

// Weight returns the service hours when they can take part in a weighted aggregate, else 0.
func (s *Service) Weight() float64 {
	if s.TotalHours > 0 {
		return s.TotalHours
	}
	return 0
}

type ChecklistItem struct {
	ID         string
	ServiceID  string
	Title      string
	Weight     float64
	Progress   float64
	OrderIndex int
	UpdatedAt  time.Time
}

type Subpackage struct {
	ID         string
	PackageID  string
	Name       string
	OrderIndex int
	CreatedAt  time.Time
}

type Package struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
