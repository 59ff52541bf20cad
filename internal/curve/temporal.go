package curve

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// DefaultTimeZone is the IANA zone used for day bucketing when none is configured.
const DefaultTimeZone = "America/Sao_Paulo"

// Timestamp is the closed set of timestamp shapes accepted from upstream records.
// ParseTimestamp resolves a raw value into one of them; calculators only ever see
// canonical days produced by NormalizeDay.
type Timestamp interface {
	resolve(loc *time.Location) (time.Time, bool)
}

// Millis is a Unix epoch in milliseconds.
type Millis int64

// ISOString is an ISO-8601 date or date-time. Values without an offset are read in
// the target zone.
type ISOString string

// DayFirstString is a dd/mm/yyyy or dd-mm-yy locale date with an optional hh:mm[:ss].
type DayFirstString string

// SecondsNanos is a structured timestamp record such as {seconds, nanoseconds}.
type SecondsNanos struct {
	Seconds int64
	Nanos   int64
}

// Accessor wraps an object exposing its own conversion method.
type Accessor func() time.Time

// Instant is an already-typed time value.
type Instant time.Time

func (m Millis) resolve(*time.Location) (time.Time, bool) {
	return time.UnixMilli(int64(m)), true
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (s ISOString) resolve(loc *time.Location) (time.Time, bool) {
	v := strings.TrimSpace(string(s))
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var dayFirstPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4}|\d{2})(?:[ T,]+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)

func (s DayFirstString) resolve(loc *time.Location) (time.Time, bool) {
	m := dayFirstPattern.FindStringSubmatch(strings.TrimSpace(string(s)))
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		year += 2000
	}
	var hour, minute, sec int
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			sec, _ = strconv.Atoi(m[6])
		}
	}
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
	// Reject dates time.Date normalized, e.g. 31/02.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func (s SecondsNanos) resolve(*time.Location) (time.Time, bool) {
	return time.Unix(s.Seconds, s.Nanos), true
}

func (a Accessor) resolve(*time.Location) (time.Time, bool) {
	if a == nil {
		return time.Time{}, false
	}
	t := a()
	return t, !t.IsZero()
}

func (i Instant) resolve(*time.Location) (time.Time, bool) {
	t := time.Time(i)
	return t, !t.IsZero()
}

type millisAccessor interface{ ToMillis() int64 }
type dateAccessor interface{ ToDate() time.Time }
type timeAccessor interface{ AsTime() time.Time }

// ParseTimestamp classifies v into a Timestamp variant. It reports false for values
// that carry no date information; nil is never read as the epoch.
func ParseTimestamp(v any) (Timestamp, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case Timestamp:
		return x, true
	case time.Time:
		return Instant(x), !x.IsZero()
	case *time.Time:
		if x == nil || x.IsZero() {
			return nil, false
		}
		return Instant(*x), true
	case float64:
		if !isFinite(x) {
			return nil, false
		}
		return Millis(int64(math.Round(x))), true
	case float32:
		return ParseTimestamp(float64(x))
	case int:
		return Millis(int64(x)), true
	case int64:
		return Millis(x), true
	case int32:
		return Millis(int64(x)), true
	case uint64:
		return Millis(int64(x)), true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return Millis(n), true
		}
		if f, err := x.Float64(); err == nil {
			return ParseTimestamp(f)
		}
		return nil, false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, false
		}
		if dayFirstPattern.MatchString(s) {
			return DayFirstString(s), true
		}
		return ISOString(s), true
	case map[string]any:
		return parseSecondsNanos(x)
	case domain.RawEvent:
		return parseSecondsNanos(x)
	case millisAccessor:
		return Accessor(func() time.Time { return time.UnixMilli(x.ToMillis()) }), true
	case dateAccessor:
		return Accessor(x.ToDate), true
	case timeAccessor:
		return Accessor(x.AsTime), true
	}
	return nil, false
}

func parseSecondsNanos(m map[string]any) (Timestamp, bool) {
	secRaw, ok := firstKey(m, "seconds", "_seconds")
	if !ok {
		return nil, false
	}
	sec, ok := toFloat(secRaw)
	if !ok {
		return nil, false
	}
	var nanos float64
	if nRaw, ok := firstKey(m, "nanoseconds", "_nanoseconds", "nanos"); ok {
		nanos, _ = toFloat(nRaw)
	}
	return SecondsNanos{Seconds: int64(sec), Nanos: int64(nanos)}, true
}

func firstKey(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ResolveInstant returns the exact instant described by v.
func ResolveInstant(v any, loc *time.Location) (time.Time, bool) {
	ts, ok := ParseTimestamp(v)
	if !ok {
		return time.Time{}, false
	}
	return ts.resolve(orUTC(loc))
}

// NormalizeDay truncates v to its calendar day in loc and returns that day as a
// UTC-midnight instant. It reports false when v cannot be read as a date.
func NormalizeDay(v any, loc *time.Location) (time.Time, bool) {
	t, ok := ResolveInstant(v, loc)
	if !ok {
		return time.Time{}, false
	}
	return DayOf(t, loc), true
}

// DayOf returns the calendar day of t in loc as a UTC-midnight instant.
func DayOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(orUTC(loc))
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// AddDays shifts a canonical day by n calendar days.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// LoadLocation resolves an IANA zone name, using DefaultTimeZone for "".
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimeZone
	}
	return time.LoadLocation(name)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
