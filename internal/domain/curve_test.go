package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurveSeries_At(t *testing.T) {
	s := CurveSeries{
		{Date: day(2024, 1, 2), Percent: 10},
		{Date: day(2024, 1, 4), Percent: 40},
		{Date: day(2024, 1, 6), Percent: 70},
	}

	assert.Equal(t, 10.0, s.At(day(2024, 1, 1)), "before first point uses first value")
	assert.Equal(t, 10.0, s.At(day(2024, 1, 2)))
	assert.Equal(t, 10.0, s.At(day(2024, 1, 3)))
	assert.Equal(t, 40.0, s.At(day(2024, 1, 5)))
	assert.Equal(t, 70.0, s.At(day(2024, 2, 1)))
	assert.Equal(t, 70.0, s.Final())
}

func TestCurveSeries_Empty(t *testing.T) {
	var s CurveSeries
	assert.Equal(t, 0.0, s.At(day(2024, 1, 1)))
	assert.Equal(t, 0.0, s.Final())
	assert.Empty(t, s.Dates())
}

func TestService_HasRangeAndWeight(t *testing.T) {
	start, end := day(2024, 1, 1), day(2024, 1, 10)
	s := Service{PlannedStart: &start, PlannedEnd: &end, TotalHours: 12}
	assert.True(t, s.HasRange())
	assert.Equal(t, 12.0, s.Weight())

	s.PlannedEnd = &start
	assert.True(t, s.HasRange(), "single-day range is valid")

	before := day(2023, 12, 31)
	s.PlannedEnd = &before
	assert.False(t, s.HasRange())

	s.TotalHours = -3
	assert.Equal(t, 0.0, s.Weight())
}

func TestProgressEvent_PercentOr(t *testing.T) {
	var e ProgressEvent
	assert.False(t, e.HasPercent())
	assert.Equal(t, 5.0, e.PercentOr(5))

	v := 42.0
	e.Percent = &v
	assert.True(t, e.HasPercent())
	assert.Equal(t, 42.0, e.PercentOr(5))
}
