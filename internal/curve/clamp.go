// Package curve computes planned and realized progress curves for services,
// subpackages and packages. Every function is pure: no I/O, no shared state.
package curve

import "math"

// ClampPercent bounds p to [0,100]. NaN collapses to 0.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
