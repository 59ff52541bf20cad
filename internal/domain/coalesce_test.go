package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "drain", CoalesceStr("", "drain", "scrub"))
	assert.Empty(t, CoalesceStr("", ""))
}

func TestLaterTime(t *testing.T) {
	a := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	b := a.Add(time.Minute)
	assert.Equal(t, b, LaterTime(a, b))
	assert.Equal(t, b, LaterTime(b, a))
	assert.Equal(t, a, LaterTime(time.Time{}, a))
}

func TestProgressEvent_CreatedFallsBackToTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	e := ProgressEvent{Timestamp: ts}
	assert.Equal(t, ts, e.Created())

	e.CreatedAt = ts.Add(-time.Hour)
	assert.Equal(t, ts.Add(-time.Hour), e.Created())
}
