package curve

import (
	"sort"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// RealizedCurve forward-fills reported percentages between report days.
// It is not forced monotonic: a later correction may lower the value.
type RealizedCurve struct {
	points domain.CurveSeries
}

// NewRealizedCurve keeps, per calendar day, the value of the latest event by
// timestamp (the later one in input order on a tie). Events without a percent are ignored.
func NewRealizedCurve(events []domain.ProgressEvent) RealizedCurve {
	type dayValue struct {
		day     time.Time
		ts      time.Time
		percent float64
	}
	byDay := make(map[int64]dayValue)
	for _, e := range events {
		if !e.HasPercent() || e.Day.IsZero() {
			continue
		}
		key := e.Day.Unix()
		prev, seen := byDay[key]
		if seen && e.Timestamp.Before(prev.ts) {
			continue
		}
		byDay[key] = dayValue{day: e.Day.UTC(), ts: e.Timestamp, percent: ClampPercent(e.PercentOr(0))}
	}

	points := make(domain.CurveSeries, 0, len(byDay))
	for _, v := range byDay {
		points = append(points, domain.CurvePoint{Date: v.day, Percent: v.percent})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return RealizedCurve{points: points}
}

// At returns the value of the latest report on or before day, or 0 before the first report.
func (c RealizedCurve) At(day time.Time) float64 {
	i := sort.Search(len(c.points), func(i int) bool { return c.points[i].Date.After(day) })
	if i == 0 {
		return 0
	}
	return c.points[i-1].Percent
}

// Points returns the per-day reported values, ascending.
func (c RealizedCurve) Points() domain.CurveSeries {
	out := make(domain.CurveSeries, len(c.points))
	copy(out, c.points)
	return out
}

// LastReport returns the most recent reported day and its value.
func (c RealizedCurve) LastReport() (domain.CurvePoint, bool) {
	if len(c.points) == 0 {
		return domain.CurvePoint{}, false
	}
	return c.points[len(c.points)-1], true
}

// RealizedPercent is the forward-filled realized percentage on day.
func RealizedPercent(events []domain.ProgressEvent, day time.Time) float64 {
	return NewRealizedCurve(events).At(day)
}
