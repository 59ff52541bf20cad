package app

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// CurveRequest asks for the curves of one service, subpackage or package.
type CurveRequest struct {
	Scope domain.Scope
	ID    string
	// On is the reference day for indicators. Nil means today in Location.
	On *time.Time
	// Location overrides the configured time zone for day bucketing.
	Location *time.Location
}

func NewCurveRequest(scope domain.Scope, id string) CurveRequest {
	return CurveRequest{Scope: scope, ID: id}
}

type CurveResponse struct {
	Scope      domain.Scope
	ID         string
	Name       string
	TotalHours float64
	// Raw series keep realized corrections; Display never decreases.
	Raw         SeriesSet
	Display     SeriesSet
	Indicators  domain.Indicators
	Diagnostics Diagnostics
	Warnings    []string
}
