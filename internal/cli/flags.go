package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/spf13/pflag"
)

// dayFlag is an optional calendar-day flag. It accepts every date shape the
// progress normalizer does and stores the canonical UTC-midnight day; unset
// leaves the target nil.
type dayFlag struct {
	target **time.Time
}

var _ pflag.Value = (*dayFlag)(nil)

func newDayFlag(p **time.Time) *dayFlag {
	return &dayFlag{target: p}
}

func (f *dayFlag) String() string {
	if f.target == nil || *f.target == nil {
		return ""
	}
	return (*f.target).Format("2006-01-02")
}

func (f *dayFlag) Set(s string) error {
	day, ok := curve.NormalizeDay(s, time.UTC)
	if !ok {
		return fmt.Errorf("invalid day %q: use YYYY-MM-DD or DD/MM/YYYY", s)
	}
	*f.target = &day
	return nil
}

func (f *dayFlag) Type() string { return "day" }

// locationFlag selects an IANA time zone for day bucketing.
type locationFlag struct {
	target **time.Location
}

var _ pflag.Value = (*locationFlag)(nil)

func newLocationFlag(p **time.Location) *locationFlag {
	return &locationFlag{target: p}
}

func (f *locationFlag) String() string {
	if f.target == nil || *f.target == nil {
		return ""
	}
	return (*f.target).String()
}

func (f *locationFlag) Set(s string) error {
	loc, err := curve.LoadLocation(s)
	if err != nil {
		return fmt.Errorf("invalid time zone %q: %w", s, err)
	}
	*f.target = loc
	return nil
}

func (f *locationFlag) Type() string { return "zone" }
