package curve

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// TimedPercent is a percentage and the instant it was last changed.
type TimedPercent struct {
	Percent float64
	At      time.Time
}

// Reconciliation is the authoritative progress of a service.
type Reconciliation struct {
	Percent float64
	Source  domain.ProgressSource
	At      time.Time
	// ManualOverride tells the caller to persist the value as an overlay and leave
	// checklist item states untouched.
	ManualOverride bool
}

// Reconcile picks between the checklist-derived percentage (timestamped by the
// latest checklist mutation) and the latest manual entry. The manual entry wins
// only when it is at least as recent as the checklist.
func Reconcile(checklist TimedPercent, manual *TimedPercent) Reconciliation {
	if manual != nil && !manual.At.Before(checklist.At) {
		return Reconciliation{
			Percent:        ClampPercent(manual.Percent),
			Source:         domain.SourceManual,
			At:             manual.At,
			ManualOverride: true,
		}
	}
	return Reconciliation{
		Percent: ClampPercent(checklist.Percent),
		Source:  domain.SourceChecklist,
		At:      checklist.At,
	}
}
