package curve

import "github.com/alexanderramin/scurve/internal/domain"

// Delta bands in percentage points.
const (
	AtRiskDelta   = -5.0
	CriticalDelta = -15.0
)

// ClassifyDelta maps realized-minus-planned onto a risk level.
func ClassifyDelta(delta float64) domain.RiskLevel {
	switch {
	case delta < CriticalDelta:
		return domain.RiskCritical
	case delta < AtRiskDelta:
		return domain.RiskAtRisk
	default:
		return domain.RiskOnTrack
	}
}

// RiskPriority returns a sort key where lower values mean higher risk.
func RiskPriority(level domain.RiskLevel) int {
	switch level {
	case domain.RiskCritical:
		return 0
	case domain.RiskAtRisk:
		return 1
	case domain.RiskOnTrack:
		return 2
	default:
		return 3
	}
}
