package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedGroupPercent_HoursWeighting(t *testing.T) {
	assert.InDelta(t, 25.0, WeightedGroupPercent([]float64{100, 0}, []float64{10, 30}), 1e-9)
}

func TestWeightedGroupPercent_ZeroHoursExcluded(t *testing.T) {
	base := WeightedGroupPercent([]float64{40, 80}, []float64{10, 30})
	for _, v := range []float64{0, 50, 100} {
		got := WeightedGroupPercent([]float64{40, 80, v}, []float64{10, 30, 0})
		assert.InDelta(t, base, got, 1e-9)
	}
	got := WeightedGroupPercent([]float64{40, 80, 100}, []float64{10, 30, -5})
	assert.InDelta(t, base, got, 1e-9, "negative hours excluded too")
	got = WeightedGroupPercent([]float64{40, 80, 100}, []float64{10, 30, math.NaN()})
	assert.InDelta(t, base, got, 1e-9)
}

func TestWeightedGroupPercent_NoHoursIsZero(t *testing.T) {
	assert.Equal(t, 0.0, WeightedGroupPercent([]float64{100}, []float64{0}))
	assert.Equal(t, 0.0, WeightedGroupPercent(nil, nil))
}

func TestWeightedGroupPercent_ClampsValues(t *testing.T) {
	assert.Equal(t, 100.0, WeightedGroupPercent([]float64{180, 100}, []float64{1, 1}))
	assert.Equal(t, 0.0, WeightedGroupPercent([]float64{-20}, []float64{3}))
}

func TestWeightedGroupPercent_MismatchedLengths(t *testing.T) {
	assert.InDelta(t, 50.0, WeightedGroupPercent([]float64{50, 100}, []float64{2}), 1e-9)
}
