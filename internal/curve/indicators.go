package curve

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// PlannedTotal is the planned completion of every scope at its end.
const PlannedTotal = 100.0

// ComputeIndicators samples both series at day, using the last point at or before
// it (the first point when day precedes the series). Delta is negative when behind plan.
func ComputeIndicators(planned, realized domain.CurveSeries, day time.Time) domain.Indicators {
	p := ClampPercent(planned.At(day))
	r := ClampPercent(realized.At(day))
	delta := r - p
	return domain.Indicators{
		ReferenceDay:  day,
		PlannedTotal:  PlannedTotal,
		PlannedToDate: p,
		Realized:      r,
		Delta:         delta,
		Risk:          ClassifyDelta(delta),
	}
}
