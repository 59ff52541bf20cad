package curve

import (
	"math"
	"testing"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPlannedPercent_LinearInterpolation(t *testing.T) {
	// 2024-01-01 .. 2024-01-11 is 11 calendar days, 10 elapsed at the end.
	s := rangedService("s", 8, 0, 10)

	assert.Equal(t, 0.0, PlannedPercent(s, d(0)))
	assert.InDelta(t, 40.0, PlannedPercent(s, d(4)), 1e-9)
	assert.InDelta(t, 50.0, PlannedPercent(s, d(5)), 1e-9)
	assert.Equal(t, 100.0, PlannedPercent(s, d(10)))
	assert.Equal(t, 0.0, PlannedPercent(s, d(-3)))
	assert.Equal(t, 100.0, PlannedPercent(s, d(40)))
}

func TestPlannedPercent_SingleDayRange(t *testing.T) {
	s := rangedService("s", 8, 3, 3)
	assert.Equal(t, 0.0, PlannedPercent(s, d(3)))
	assert.Equal(t, 100.0, PlannedPercent(s, d(4)))
}

func TestPlannedPercent_InvalidInputsPlanNothing(t *testing.T) {
	inverted := rangedService("s", 8, 5, 1)
	noHours := rangedService("s", 0, 0, 10)
	nanHours := rangedService("s", math.NaN(), 0, 10)
	noEnd := rangedService("s", 8, 0, 10)
	noEnd.PlannedEnd = nil

	for _, s := range []domain.Service{inverted, noHours, nanHours, noEnd} {
		for _, day := range []int{-1, 0, 5, 10, 20} {
			assert.Equal(t, 0.0, PlannedPercent(s, d(day)))
		}
	}
}

func TestSanitizeDailySeries(t *testing.T) {
	assert.Equal(t, []float64{10, 30, 30, 30, 100}, SanitizeDailySeries([]float64{10, 30, 30, 20, 100}))
	assert.Equal(t, []float64{10, 30, 30, 30, 100}, SanitizeDailySeries([]float64{10, 30, 30, 20, 90}))
	assert.Equal(t, []float64{0, 0, 100, 100}, SanitizeDailySeries([]float64{-5, math.NaN(), 120, 80}))

	in := []float64{50, 10}
	SanitizeDailySeries(in)
	assert.Equal(t, []float64{50, 10}, in, "input untouched")
}

func TestPlannedPercent_DailySeriesOverridesInterpolation(t *testing.T) {
	s := rangedService("s", 8, 0, 4)
	s.PlannedDailySeries = []float64{10, 30, 30, 20, 90}

	c := NewPlannedCurve(s)
	assert.True(t, c.UsesDailySeries())
	assert.Equal(t, 0.0, c.At(d(-1)))
	assert.Equal(t, 10.0, c.At(d(0)))
	assert.Equal(t, 30.0, c.At(d(3)))
	assert.Equal(t, 100.0, c.At(d(4)))
	assert.Equal(t, 100.0, c.At(d(9)))
}

func TestPlannedPercent_MismatchedSeriesIgnored(t *testing.T) {
	s := rangedService("s", 8, 0, 10)
	s.PlannedDailySeries = []float64{50, 100}

	c := NewPlannedCurve(s)
	assert.False(t, c.UsesDailySeries())
	assert.InDelta(t, 40.0, c.At(d(4)), 1e-9)
}
