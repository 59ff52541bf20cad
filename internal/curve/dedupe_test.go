package curve

import (
	"testing"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dedupeBase = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

func manualReport(id string, offset time.Duration, percent float64) domain.ProgressEvent {
	return domain.ProgressEvent{
		ID:          id,
		Day:         DayOf(dedupeBase, time.UTC),
		Timestamp:   dedupeBase.Add(offset),
		Percent:     pct(percent),
		Author:      "joao@site.com",
		Mode:        domain.ModeManual,
		Description: "Formwork finished on level 2",
	}
}

func TestDedupe_SyntheticDuplicatesKeepLater(t *testing.T) {
	first := manualReport("", 5*time.Second, 40)
	second := manualReport("", 40*time.Second, 40)
	second.Author = "JOAO@site.com"

	out := Dedupe([]domain.ProgressEvent{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, second.Timestamp, out[0].Timestamp)
}

func TestDedupe_PersistedIDBeatsLaterAnonymousDuplicate(t *testing.T) {
	withID := manualReport("doc-123", 5*time.Second, 40)
	anonymous := manualReport("", 50*time.Second, 40)

	for _, in := range [][]domain.ProgressEvent{{withID, anonymous}, {anonymous, withID}} {
		out := Dedupe(in)
		require.Len(t, out, 1)
		assert.Equal(t, "doc-123", out[0].ID)
		assert.Equal(t, withID.Timestamp, out[0].Timestamp)
	}
}

func TestDedupe_SamePersistedIDKeepsLater(t *testing.T) {
	older := manualReport("doc-1", 0, 20)
	newer := manualReport("doc-1", 2*time.Hour, 35)

	out := Dedupe([]domain.ProgressEvent{newer, older})
	require.Len(t, out, 1)
	assert.Equal(t, 35.0, *out[0].Percent)
}

func TestDedupe_TieMergesPresentFieldsOnly(t *testing.T) {
	first := manualReport("", 0, 40)
	first.ServiceID = "svc-9"
	second := manualReport("", 0, 40)
	second.Items = map[string]float64{"forms": 100}
	second.Description = "Formwork finished on level 2, inspected"

	out := Dedupe([]domain.ProgressEvent{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "svc-9", out[0].ServiceID, "kept from first")
	assert.Equal(t, map[string]float64{"forms": 100}, out[0].Items, "filled from second")
	assert.Equal(t, "Formwork finished on level 2, inspected", out[0].Description)
}

func TestDedupe_TransientIDsAreNotIdentity(t *testing.T) {
	a := manualReport("tmp-abc", 0, 40)
	b := manualReport("local-xyz", 10*time.Second, 40)
	assert.False(t, HasPersistedID(a))
	assert.False(t, HasPersistedID(b))

	out := Dedupe([]domain.ProgressEvent{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "local-xyz", out[0].ID)
}

func TestDedupe_DistinctReportsSurviveSortedNewestFirst(t *testing.T) {
	a := manualReport("", 0, 40)
	b := manualReport("", 3*time.Minute, 40)  // another minute
	c := manualReport("", 10*time.Second, 41) // another percent
	e := manualReport("", 20*time.Second, 40)
	e.Mode = domain.ModeChecklist // another channel

	out := Dedupe([]domain.ProgressEvent{a, b, c, e})
	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].Timestamp.After(out[i-1].Timestamp), "sorted descending")
	}
	assert.Equal(t, b.Timestamp, out[0].Timestamp)
}

func TestDedupe_PercentRoundedToOneDecimal(t *testing.T) {
	a := manualReport("", 0, 33.34)
	b := manualReport("", time.Second, 33.31)
	assert.Equal(t, SyntheticKey(a), SyntheticKey(b))
	assert.Len(t, Dedupe([]domain.ProgressEvent{a, b}), 1)
}

func TestDedupe_Idempotent(t *testing.T) {
	events := []domain.ProgressEvent{
		manualReport("", 0, 40),
		manualReport("", 30*time.Second, 40),
		manualReport("doc-1", 45*time.Second, 40),
		manualReport("doc-1", time.Hour, 55),
		manualReport("", 2*time.Hour, 60),
		manualReport("tmp-1", 2*time.Hour, 60),
	}
	once := Dedupe(events)
	assert.Equal(t, once, Dedupe(once))
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestDedupe_CreationInstantDecidesOverSubmission(t *testing.T) {
	// Same minute bucket by submission; b was created later but submitted earlier.
	a := manualReport("", 50*time.Second, 40)
	a.CreatedAt = dedupeBase.Add(time.Second)
	b := manualReport("", 10*time.Second, 40)
	b.CreatedAt = dedupeBase.Add(30 * time.Second)

	out := Dedupe([]domain.ProgressEvent{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, b.CreatedAt, out[0].CreatedAt)
	assert.Equal(t, b.Timestamp, out[0].Timestamp)
}

func TestDedupe_SortsByCreationInstant(t *testing.T) {
	early := manualReport("doc-1", 2*time.Hour, 10)
	early.CreatedAt = dedupeBase
	late := manualReport("doc-2", 0, 20)
	late.CreatedAt = dedupeBase.Add(3 * time.Hour)

	out := Dedupe([]domain.ProgressEvent{early, late})
	require.Len(t, out, 2)
	assert.Equal(t, "doc-2", out[0].ID)
	assert.Equal(t, out, Dedupe(out))
}
