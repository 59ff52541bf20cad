package curve

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// Bounds returns the earliest planned start and latest planned end across services.
// A service with an inverted range is ignored; a service with a single bound
// contributes that bound only. When only one side is known it bounds both ends.
func Bounds(services []domain.Service) (time.Time, time.Time, bool) {
	var minStart, maxEnd time.Time
	var haveStart, haveEnd bool
	for _, s := range services {
		if s.PlannedStart != nil && s.PlannedEnd != nil && s.PlannedEnd.Before(*s.PlannedStart) {
			continue
		}
		if s.PlannedStart != nil && (!haveStart || s.PlannedStart.Before(minStart)) {
			minStart = *s.PlannedStart
			haveStart = true
		}
		if s.PlannedEnd != nil && (!haveEnd || s.PlannedEnd.After(maxEnd)) {
			maxEnd = *s.PlannedEnd
			haveEnd = true
		}
	}
	switch {
	case haveStart && haveEnd:
		if maxEnd.Before(minStart) {
			return maxEnd, minStart, true
		}
		return minStart, maxEnd, true
	case haveStart:
		return minStart, minStart, true
	case haveEnd:
		return maxEnd, maxEnd, true
	}
	return time.Time{}, time.Time{}, false
}

// BuildTimeline returns every calendar day between the services' bounds, inclusive.
func BuildTimeline(services []domain.Service) []time.Time {
	start, end, ok := Bounds(services)
	if !ok {
		return nil
	}
	return DaysInclusive(start, end)
}

// DaysInclusive lists the canonical days from start to end. It is empty when end precedes start.
func DaysInclusive(start, end time.Time) []time.Time {
	n := DaysBetween(start, end)
	if n < 0 {
		return nil
	}
	days := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		days = append(days, AddDays(start, i))
	}
	return days
}
