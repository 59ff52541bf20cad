package app

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// SeriesSet is a pair of daily series sharing one timeline.
type SeriesSet struct {
	Timeline []time.Time
	Planned  domain.CurveSeries
	Realized domain.CurveSeries
}

// Diagnostics counts how raw progress records fared on the way into a curve.
type Diagnostics struct {
	RawEvents  int
	Dropped    int
	Duplicates int
}
