package curve

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/scurve/internal/domain"
)

// transientIDPrefixes mark client-minted ids that were never persisted.
var transientIDPrefixes = []string{"tmp-", "local-", "pending-"}

// descriptionKeyLen bounds how much of the description takes part in a synthetic key.
const descriptionKeyLen = 24

// HasPersistedID reports whether e carries a stable, persisted identity.
func HasPersistedID(e domain.ProgressEvent) bool {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return false
	}
	lower := strings.ToLower(id)
	for _, p := range transientIDPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return true
}

// SyntheticKey identifies a report by what it says rather than by id:
// mode, author, minute bucket, percent to one decimal and a description prefix.
func SyntheticKey(e domain.ProgressEvent) string {
	percent := ""
	if e.HasPercent() {
		percent = fmt.Sprintf("%.1f", math.Round(e.PercentOr(0)*10)/10)
	}
	desc := []rune(strings.ToLower(strings.TrimSpace(e.Description)))
	if len(desc) > descriptionKeyLen {
		desc = desc[:descriptionKeyLen]
	}
	minute := int64(math.Floor(float64(e.Timestamp.Unix()) / 60))
	return strings.Join([]string{
		string(e.Mode),
		strings.ToLower(strings.TrimSpace(e.Author)),
		fmt.Sprint(minute),
		percent,
		string(desc),
	}, "|")
}

// DedupeKey is the persisted id when there is one, else the synthetic key.
func DedupeKey(e domain.ProgressEvent) string {
	if HasPersistedID(e) {
		return "id:" + strings.TrimSpace(e.ID)
	}
	return "syn:" + SyntheticKey(e)
}

// Dedupe collapses reports of the same action delivered more than once.
//
// Events with a persisted id merge by id. Events without one merge by synthetic
// key, and are absorbed entirely by a persisted event whose synthetic key matches.
// Within a group the later creation instant (ProgressEvent.Created) wins; on a tie
// the first event is kept and the later one only fills in fields it actually
// carries. The result is sorted by creation instant, newest first, and
// Dedupe(Dedupe(x)) equals Dedupe(x).
func Dedupe(events []domain.ProgressEvent) []domain.ProgressEvent {
	persisted := make(map[string]domain.ProgressEvent)
	var persistedOrder []string
	anonymous := make(map[string]domain.ProgressEvent)
	var anonymousOrder []string

	for _, e := range events {
		key := DedupeKey(e)
		if HasPersistedID(e) {
			if prev, ok := persisted[key]; ok {
				persisted[key] = mergeDuplicate(prev, e)
				continue
			}
			persisted[key] = e
			persistedOrder = append(persistedOrder, key)
			continue
		}
		if prev, ok := anonymous[key]; ok {
			anonymous[key] = mergeDuplicate(prev, e)
			continue
		}
		anonymous[key] = e
		anonymousOrder = append(anonymousOrder, key)
	}

	claimed := make(map[string]bool, len(persisted))
	out := make([]keyedEvent, 0, len(persisted)+len(anonymous))
	for _, key := range persistedOrder {
		e := persisted[key]
		claimed["syn:"+SyntheticKey(e)] = true
		out = append(out, keyedEvent{key: key, event: e})
	}
	for _, key := range anonymousOrder {
		if claimed[key] {
			continue
		}
		out = append(out, keyedEvent{key: key, event: anonymous[key]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].event.Created(), out[j].event.Created()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].key < out[j].key
	})

	result := make([]domain.ProgressEvent, len(out))
	for i, ke := range out {
		result[i] = ke.event
	}
	return result
}

type keyedEvent struct {
	key   string
	event domain.ProgressEvent
}

// mergeDuplicate resolves two events that share a key and the same identity status.
func mergeDuplicate(first, second domain.ProgressEvent) domain.ProgressEvent {
	switch {
	case second.Created().After(first.Created()):
		return second
	case first.Created().After(second.Created()):
		return first
	}

	merged := first
	if second.ID != "" {
		merged.ID = second.ID
	}
	if second.ServiceID != "" {
		merged.ServiceID = second.ServiceID
	}
	if !second.Day.IsZero() {
		merged.Day = second.Day
	}
	if !second.CreatedAt.IsZero() {
		merged.CreatedAt = second.CreatedAt
	}
	if second.HasPercent() {
		p := *second.Percent
		merged.Percent = &p
	}
	if len(second.Items) > 0 {
		merged.Items = second.Items
	}
	if second.Author != "" {
		merged.Author = second.Author
	}
	if second.Mode != domain.ModeUnknown {
		merged.Mode = second.Mode
	}
	if second.Description != "" {
		merged.Description = second.Description
	}
	return merged
}
