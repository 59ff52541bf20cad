package app

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

type StatusRequest struct {
	Now          *time.Time
	PackageScope []string
	Location     *time.Location
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{}
}

type PackageStatusView struct {
	PackageID       string
	PackageName     string
	SubpackageCount int
	ServiceCount    int
	TotalHours      float64
	Indicators      domain.Indicators
	Notes           []string
}

type StatusSummary struct {
	GeneratedAt    time.Time
	ReferenceDay   time.Time
	CountsTotal    int
	CountsOnTrack  int
	CountsAtRisk   int
	CountsCritical int
	PolicyMessage  string
}

type StatusResponse struct {
	Summary  StatusSummary
	Packages []PackageStatusView
	Warnings []string
}

type StatusErrorCode string

const (
	StatusErrInvalidScope StatusErrorCode = "INVALID_SCOPE"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
