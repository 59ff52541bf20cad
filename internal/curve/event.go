package curve

import (
	"strings"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// NormalizeOptions configures event normalization.
type NormalizeOptions struct {
	// Location buckets instants into calendar days. Nil means UTC.
	Location *time.Location
	// Weights, when any is positive, turn a per-item breakdown into the event percent.
	Weights map[string]float64
	// ServiceID is used when the record does not name its service.
	ServiceID string
	// Aliases overrides DefaultEventAliases.
	Aliases *EventAliasSet
}

func (o NormalizeOptions) aliases() *EventAliasSet {
	if o.Aliases != nil {
		return o.Aliases
	}
	return &DefaultEventAliases
}

// NormalizeEvent reads a raw progress record. It reports false when no alias
// resolves to a calendar day; such records are dropped rather than guessed.
func NormalizeEvent(raw domain.RawEvent, opts NormalizeOptions) (domain.ProgressEvent, bool) {
	a := opts.aliases()
	loc := orUTC(opts.Location)
	toDay := func(v any) (time.Time, bool) { return NormalizeDay(v, loc) }
	toInstant := func(v any) (time.Time, bool) { return ResolveInstant(v, loc) }

	day, ok := firstOf(a.WorkedDay, raw, toDay)
	if !ok {
		day, ok = firstOf(a.Submitted, raw, toDay)
	}
	if !ok {
		day, ok = firstOf(a.Generic, raw, toDay)
	}
	if !ok {
		return domain.ProgressEvent{}, false
	}

	ts, ok := firstOf(a.Submitted, raw, toInstant)
	if !ok {
		ts, ok = firstOf(a.Generic, raw, toInstant)
	}
	if !ok {
		ts = day
	}

	e := domain.ProgressEvent{
		Day:       day,
		Timestamp: ts.UTC(),
	}
	if created, ok := firstOf(a.Created, raw, toInstant); ok {
		e.CreatedAt = created.UTC()
	}
	e.ID, _ = firstOf(a.ID, raw, toString)
	e.ServiceID, _ = firstOf(a.ServiceID, raw, toString)
	e.ServiceID = domain.CoalesceStr(e.ServiceID, opts.ServiceID)
	e.Author, _ = firstOf(a.Author, raw, toString)
	e.Description, _ = firstOf(a.Description, raw, toString)
	if mode, ok := firstOf(a.Mode, raw, toString); ok {
		e.Mode = domain.EventMode(strings.ToLower(mode))
	}

	if p, ok := firstOf(a.Percent, raw, toFloat); ok {
		p = ClampPercent(p)
		e.Percent = &p
	}

	if items, ok := firstOf(a.Items, raw, toItems); ok {
		e.Items = items
		switch {
		case hasWeights(opts.Weights):
			p := WeightedProgress(items, opts.Weights)
			e.Percent = &p
		case e.Percent == nil:
			p := WeightedProgress(items, nil)
			e.Percent = &p
		}
	}

	return e, true
}

// NormalizeEvents normalizes every record and reports how many were dropped.
func NormalizeEvents(raws []domain.RawEvent, opts NormalizeOptions) ([]domain.ProgressEvent, int) {
	events := make([]domain.ProgressEvent, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		e, ok := NormalizeEvent(raw, opts)
		if !ok {
			dropped++
			continue
		}
		events = append(events, e)
	}
	return events, dropped
}
