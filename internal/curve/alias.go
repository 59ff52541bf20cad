package curve

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/scurve/internal/domain"
)

// AliasTable lists, in priority order, the field names under which upstream
// records carry one concept. Dotted names descend into nested objects.
type AliasTable struct {
	Name    string
	Version int
	Fields  []string
}

// EventAliasSet groups every alias table the event normalizer consults.
// Integrating a new upstream source means extending these tables only.
type EventAliasSet struct {
	Percent     AliasTable
	WorkedDay   AliasTable
	Submitted   AliasTable
	Generic     AliasTable
	Created     AliasTable
	Items       AliasTable
	ID          AliasTable
	ServiceID   AliasTable
	Author      AliasTable
	Mode        AliasTable
	Description AliasTable
}

// AliasVersion is bumped whenever DefaultEventAliases changes.
const AliasVersion = 4

// DefaultEventAliases covers the channels known to produce progress reports:
// the manual entry form, checklist snapshots, legacy per-item aggregates and bulk imports.
var DefaultEventAliases = EventAliasSet{
	Percent: AliasTable{Name: "percent", Version: AliasVersion, Fields: []string{
		"percent", "percentage", "progress",
		"manualPercent", "manual_percent", "manual.percent",
		"snapshotPercent", "snapshot_percent", "snapshot.percent",
		"itemsAggregatePercent", "aggregatePercent", "legacy.aggregatePercent",
	}},
	WorkedDay: AliasTable{Name: "worked_day", Version: AliasVersion, Fields: []string{
		"workedDay", "worked_day", "workDay", "day", "date",
	}},
	Submitted: AliasTable{Name: "submitted", Version: AliasVersion, Fields: []string{
		"submittedAt", "submitted_at", "audit.submittedAt", "audit.at",
	}},
	Generic: AliasTable{Name: "generic_time", Version: AliasVersion, Fields: []string{
		"createdAt", "created_at", "updatedAt", "updated_at", "timestamp",
	}},
	Created: AliasTable{Name: "created", Version: AliasVersion, Fields: []string{
		"createdAt", "created_at", "audit.createdAt",
	}},
	Items: AliasTable{Name: "items", Version: AliasVersion, Fields: []string{
		"items", "checklist", "itemProgress", "item_progress",
	}},
	ID: AliasTable{Name: "id", Version: AliasVersion, Fields: []string{
		"id", "eventId", "event_id", "_id",
	}},
	ServiceID: AliasTable{Name: "service_id", Version: AliasVersion, Fields: []string{
		"serviceId", "service_id",
	}},
	Author: AliasTable{Name: "author", Version: AliasVersion, Fields: []string{
		"author", "authorEmail", "userEmail", "userId", "createdBy", "audit.user",
	}},
	Mode: AliasTable{Name: "mode", Version: AliasVersion, Fields: []string{
		"mode", "source", "channel",
	}},
	Description: AliasTable{Name: "description", Version: AliasVersion, Fields: []string{
		"description", "note", "comment", "observation",
	}},
}

// lookupPath returns the value at a dotted path, or false when any segment is missing.
func lookupPath(raw map[string]any, path string) (any, bool) {
	cur := any(raw)
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.RawEvent:
		return m, true
	}
	return nil, false
}

// firstOf returns the first alias value that conv accepts.
func firstOf[T any](t AliasTable, raw map[string]any, conv func(any) (T, bool)) (T, bool) {
	for _, field := range t.Fields {
		v, ok := lookupPath(raw, field)
		if !ok {
			continue
		}
		if out, ok := conv(v); ok {
			return out, true
		}
	}
	var zero T
	return zero, false
}

// toFloat accepts numbers and numeric strings (comma or dot decimal) that are finite.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(x), "%")
		s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, isFinite(f)
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case json.Number:
		return x.String(), true
	case float64, int, int64:
		return fmt.Sprint(x), true
	}
	return "", false
}

// toItems reads a per-item breakdown either as {itemID: percent} or as a list of
// {id, progress} objects. Values are clamped; unreadable entries are skipped.
func toItems(v any) (map[string]float64, bool) {
	out := make(map[string]float64)
	if m, ok := asMap(v); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if f, ok := toFloat(m[k]); ok {
				out[k] = ClampPercent(f)
			}
		}
		return out, len(out) > 0
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	for _, entry := range list {
		m, ok := asMap(entry)
		if !ok {
			continue
		}
		id, ok := firstOf(itemIDAliases, m, toString)
		if !ok {
			continue
		}
		if f, ok := firstOf(itemProgressAliases, m, toFloat); ok {
			out[id] = ClampPercent(f)
		}
	}
	return out, len(out) > 0
}

var (
	itemIDAliases       = AliasTable{Name: "item_id", Version: AliasVersion, Fields: []string{"id", "itemId", "item_id"}}
	itemProgressAliases = AliasTable{Name: "item_progress", Version: AliasVersion, Fields: []string{"progress", "percent", "value"}}
)
