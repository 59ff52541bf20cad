package curve

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/scurve/internal/domain"
)

var baseDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// d returns baseDay shifted by n calendar days.
func d(n int) time.Time {
	return AddDays(baseDay, n)
}

func pct(v float64) *float64 {
	return &v
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("loading zone: %v", err)
	}
	return loc
}

func rangedService(id string, hours float64, start, end int) domain.Service {
	s, e := d(start), d(end)
	return domain.Service{ID: id, TotalHours: hours, PlannedStart: &s, PlannedEnd: &e}
}

func reportOn(day int, percent float64) domain.ProgressEvent {
	return domain.ProgressEvent{
		Day:       d(day),
		Timestamp: d(day).Add(15 * time.Hour),
		Percent:   pct(percent),
		Mode:      domain.ModeManual,
	}
}
