package curve

import "math"

// WeightedGroupPercent returns Σ(value×hours)/Σhours over entries with positive,
// finite hours, clamped to [0,100]. With no positive hours the result is 0.
// Extra entries in the longer slice are ignored.
func WeightedGroupPercent(values, hours []float64) float64 {
	n := len(values)
	if len(hours) < n {
		n = len(hours)
	}
	var sum, total float64
	for i := 0; i < n; i++ {
		h := hours[i]
		if !(h > 0) || math.IsInf(h, 0) {
			continue
		}
		sum += ClampPercent(values[i]) * h
		total += h
	}
	if total <= 0 {
		return 0
	}
	return ClampPercent(sum / total)
}
