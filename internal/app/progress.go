package app

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// ManualEntryRequest records a manual percentage for a service.
type ManualEntryRequest struct {
	ServiceID string
	Percent   float64
	// Day is the worked day the entry refers to. Nil means the day of At.
	Day *time.Time
	// At is when the entry was made. Nil means now.
	At          *time.Time
	Author      string
	Description string
}

func NewManualEntryRequest(serviceID string, percent float64) ManualEntryRequest {
	return ManualEntryRequest{ServiceID: serviceID, Percent: percent}
}

// ProgressView is the reconciled progress of one service.
type ProgressView struct {
	ServiceID        string
	ServiceName      string
	Percent          float64
	Source           domain.ProgressSource
	At               time.Time
	ChecklistPercent float64
	Overlay          *domain.ProgressOverlay
	Items            []domain.ChecklistItem
	EventID          string
}
