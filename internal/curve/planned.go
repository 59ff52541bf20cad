package curve

import (
	"math"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// PlannedCurve answers the planned percentage of one service at any day.
type PlannedCurve struct {
	valid  bool
	start  time.Time
	end    time.Time
	series []float64
}

// NewPlannedCurve prepares the planned curve of s. A service without a valid range
// or without positive hours plans 0% on every day.
func NewPlannedCurve(s domain.Service) PlannedCurve {
	if !s.HasRange() || !(s.TotalHours > 0) || math.IsInf(s.TotalHours, 0) {
		return PlannedCurve{}
	}
	c := PlannedCurve{
		valid: true,
		start: *s.PlannedStart,
		end:   *s.PlannedEnd,
	}
	if len(s.PlannedDailySeries) > 0 && len(s.PlannedDailySeries) == DaysBetween(c.start, c.end)+1 {
		c.series = SanitizeDailySeries(s.PlannedDailySeries)
	}
	return c
}

// At returns the planned percentage on day.
func (c PlannedCurve) At(day time.Time) float64 {
	if !c.valid {
		return 0
	}
	if c.series != nil {
		if day.Before(c.start) {
			return 0
		}
		idx := DaysBetween(c.start, day)
		if idx >= len(c.series) {
			idx = len(c.series) - 1
		}
		return c.series[idx]
	}

	if !day.After(c.start) {
		return 0
	}
	if !day.Before(c.end) {
		return 100
	}
	totalDays := DaysBetween(c.start, c.end)
	if totalDays < 1 {
		totalDays = 1
	}
	elapsed := DaysBetween(c.start, day)
	return ClampPercent(float64(elapsed) / float64(totalDays) * 100)
}

// UsesDailySeries reports whether an explicit daily plan overrides interpolation.
func (c PlannedCurve) UsesDailySeries() bool {
	return c.series != nil
}

// PlannedPercent is the planned percentage of s on day.
func PlannedPercent(s domain.Service, day time.Time) float64 {
	return NewPlannedCurve(s).At(day)
}

// SanitizeDailySeries clamps each value, raises any value below its predecessor and
// pins the final value to 100. The input is not modified.
func SanitizeDailySeries(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		v = ClampPercent(v)
		if i > 0 && v < out[i-1] {
			v = out[i-1]
		}
		out[i] = v
	}
	if len(out) > 0 {
		out[len(out)-1] = 100
	}
	return out
}
