package domain

import (
	"sort"
	"time"
)

type CurvePoint struct {
	Date    time.Time
	Percent float64
}

// CurveSeries is ordered ascending by date.
type CurveSeries []CurvePoint

// At returns the percent of the last point at or before day. A day before the
// first point yields the first point's value; an empty series yields 0.
func (s CurveSeries) At(day time.Time) float64 {
	if len(s) == 0 {
		return 0
	}
	i := sort.Search(len(s), func(i int) bool { return s[i].Date.After(day) })
	if i == 0 {
		return s[0].Percent
	}
	return s[i-1].Percent
}

// Final returns the last point's value, or 0 for an empty series.
func (s CurveSeries) Final() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Percent
}

// Dates returns the series days in order.
func (s CurveSeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// Indicators summarizes a pair of curves at a reference day.
type Indicators struct {
	ReferenceDay  time.Time
	PlannedTotal  float64
	PlannedToDate float64
	Realized      float64
	Delta         float64
	Risk          RiskLevel
}
