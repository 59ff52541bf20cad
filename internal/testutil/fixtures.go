package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Day returns the canonical day for a calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func NewTestPackage(name string) *domain.Package {
	return &domain.Package{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Subpackage options
type SubpackageOption func(*domain.Subpackage)

func WithOrderIndex(i int) SubpackageOption {
	return func(sp *domain.Subpackage) {
		sp.OrderIndex = i
	}
}

func NewTestSubpackage(packageID, name string, opts ...SubpackageOption) *domain.Subpackage {
	sp := &domain.Subpackage{
		ID:        uuid.New().String(),
		PackageID: packageID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Service options
type ServiceOption func(*domain.Service)

func WithHours(h float64) ServiceOption {
	return func(s *domain.Service) {
		s.TotalHours = h
	}
}

func WithPlannedRange(start, end time.Time) ServiceOption {
	return func(s *domain.Service) {
		s.PlannedStart = &start
		s.PlannedEnd = &end
	}
}

func WithoutPlannedRange() ServiceOption {
	return func(s *domain.Service) {
		s.PlannedStart = nil
		s.PlannedEnd = nil
	}
}

func WithDailySeries(series ...float64) ServiceOption {
	return func(s *domain.Service) {
		s.PlannedDailySeries = series
	}
}

func WithCode(code string) ServiceOption {
	return func(s *domain.Service) {
		s.Code = code
	}
}

// NewTestService returns a 10-hour service planned over the first ten days of 2024.
func NewTestService(subpackageID, name string, opts ...ServiceOption) *domain.Service {
	now := time.Now().UTC()
	start := Day(2024, 1, 1)
	end := Day(2024, 1, 10)
	s := &domain.Service{
		ID:           uuid.New().String(),
		SubpackageID: subpackageID,
		Code:         fmt.Sprintf("SVC-%03d", testCodeCounter.Add(1)),
		Name:         name,
		TotalHours:   10,
		PlannedStart: &start,
		PlannedEnd:   &end,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checklist item options
type ChecklistOption func(*domain.ChecklistItem)

func WithProgress(p float64) ChecklistOption {
	return func(c *domain.ChecklistItem) {
		c.Progress = p
	}
}

func WithItemUpdatedAt(t time.Time) ChecklistOption {
	return func(c *domain.ChecklistItem) {
		c.UpdatedAt = t
	}
}

func NewTestChecklistItem(serviceID, id string, weight float64, opts ...ChecklistOption) *domain.ChecklistItem {
	c := &domain.ChecklistItem{
		ID:        id,
		ServiceID: serviceID,
		Title:     "Item " + id,
		Weight:    weight,
		UpdatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestReport builds a raw progress record the way the manual entry form emits it.
func NewTestReport(serviceID string, day time.Time, percent float64) domain.RawEvent {
	return domain.RawEvent{
		"id":          uuid.New().String(),
		"serviceId":   serviceID,
		"workedDay":   day.Format("2006-01-02"),
		"submittedAt": day.Add(18 * time.Hour).Format(time.RFC3339),
		"percent":     percent,
		"mode":        string(domain.ModeManual),
	}
}
