package curve

import (
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
)

// ServiceInput is everything the builder needs about one service. Raw records are
// normalized here; Events are taken as already normalized. Both are deduplicated together.
type ServiceInput struct {
	Service   domain.Service
	Checklist []domain.ChecklistItem
	Raw       []domain.RawEvent
	Events    []domain.ProgressEvent
}

// SubpackageInput groups the services of one subpackage.
type SubpackageInput struct {
	Subpackage domain.Subpackage
	Services   []ServiceInput
}

// BuildStats counts what normalization and deduplication did to the inputs.
type BuildStats struct {
	RawEvents  int
	Dropped    int
	Duplicates int
}

func (s BuildStats) add(o BuildStats) BuildStats {
	return BuildStats{
		RawEvents:  s.RawEvents + o.RawEvents,
		Dropped:    s.Dropped + o.Dropped,
		Duplicates: s.Duplicates + o.Duplicates,
	}
}

// Curves holds full daily series over a timeline. Planned and Realized are raw:
// realized values may decrease where a report corrected an earlier one.
type Curves struct {
	Timeline   []time.Time
	Planned    domain.CurveSeries
	Realized   domain.CurveSeries
	TotalHours float64
	Stats      BuildStats
}

// Display returns a copy whose series never decrease, for cumulative charts.
func (c Curves) Display() Curves {
	out := c
	out.Planned = MonotonicClamp(c.Planned)
	out.Realized = MonotonicClamp(c.Realized)
	return out
}

// Indicators samples the curves at day.
func (c Curves) Indicators(day time.Time) domain.Indicators {
	return ComputeIndicators(c.Planned, c.Realized, day)
}

// MonotonicClamp raises every value to at least its predecessor. The input is not modified.
func MonotonicClamp(s domain.CurveSeries) domain.CurveSeries {
	out := make(domain.CurveSeries, len(s))
	for i, p := range s {
		if i > 0 && p.Percent < out[i-1].Percent {
			p.Percent = out[i-1].Percent
		}
		out[i] = p
	}
	return out
}

type preparedService struct {
	service  domain.Service
	hours    float64
	planned  PlannedCurve
	realized RealizedCurve
	stats    BuildStats
}

// prepare runs normalization, deduplication and both per-service calculators.
func prepare(in ServiceInput, loc *time.Location) preparedService {
	normalized, dropped := NormalizeEvents(in.Raw, NormalizeOptions{
		Location:  loc,
		Weights:   ChecklistWeights(in.Checklist),
		ServiceID: in.Service.ID,
	})
	all := make([]domain.ProgressEvent, 0, len(normalized)+len(in.Events))
	all = append(all, normalized...)
	all = append(all, in.Events...)
	deduped := Dedupe(all)

	return preparedService{
		service:  in.Service,
		hours:    in.Service.Weight(),
		planned:  NewPlannedCurve(in.Service),
		realized: NewRealizedCurve(deduped),
		stats: BuildStats{
			RawEvents:  len(in.Raw),
			Dropped:    dropped,
			Duplicates: len(all) - len(deduped),
		},
	}
}

// group is a set of prepared services aggregated by hours.
type group struct {
	services []preparedService
	hours    float64
	stats    BuildStats
}

func newGroup(inputs []ServiceInput, loc *time.Location) group {
	var g group
	for _, in := range inputs {
		p := prepare(in, loc)
		g.services = append(g.services, p)
		g.hours += p.hours
		g.stats = g.stats.add(p.stats)
	}
	return g
}

func (g group) at(day time.Time) (planned, realized float64) {
	values := make([]float64, len(g.services))
	hours := make([]float64, len(g.services))
	for i, s := range g.services {
		values[i] = s.planned.At(day)
		hours[i] = s.hours
	}
	planned = WeightedGroupPercent(values, hours)
	for i, s := range g.services {
		values[i] = s.realized.At(day)
	}
	realized = WeightedGroupPercent(values, hours)
	return planned, realized
}

func (g group) domainServices() []domain.Service {
	out := make([]domain.Service, len(g.services))
	for i, s := range g.services {
		out[i] = s.service
	}
	return out
}

// BuildCurves produces hours-weighted planned and realized series over the
// timeline spanned by the services. This is the subpackage-level computation.
func BuildCurves(inputs []ServiceInput, loc *time.Location) Curves {
	g := newGroup(inputs, loc)
	timeline := BuildTimeline(g.domainServices())
	c := Curves{
		Timeline:   timeline,
		Planned:    make(domain.CurveSeries, len(timeline)),
		Realized:   make(domain.CurveSeries, len(timeline)),
		TotalHours: g.hours,
		Stats:      g.stats,
	}
	for i, day := range timeline {
		p, r := g.at(day)
		c.Planned[i] = domain.CurvePoint{Date: day, Percent: p}
		c.Realized[i] = domain.CurvePoint{Date: day, Percent: r}
	}
	return c
}

// BuildServiceCurves is BuildCurves for a single service.
func BuildServiceCurves(in ServiceInput, loc *time.Location) Curves {
	return BuildCurves([]ServiceInput{in}, loc)
}

// BuildPackageCurves aggregates in two levels: each subpackage is the hours-weighted
// mean of its services, and the package is the mean of its subpackages weighted by
// the subpackage hours (the sum of its services' hours).
func BuildPackageCurves(subs []SubpackageInput, loc *time.Location) Curves {
	groups := make([]group, len(subs))
	var all []domain.Service
	var c Curves
	subHours := make([]float64, len(subs))
	for i, sub := range subs {
		groups[i] = newGroup(sub.Services, loc)
		subHours[i] = groups[i].hours
		c.TotalHours += groups[i].hours
		c.Stats = c.Stats.add(groups[i].stats)
		all = append(all, groups[i].domainServices()...)
	}

	c.Timeline = BuildTimeline(all)
	c.Planned = make(domain.CurveSeries, len(c.Timeline))
	c.Realized = make(domain.CurveSeries, len(c.Timeline))
	planned := make([]float64, len(groups))
	realized := make([]float64, len(groups))
	for i, day := range c.Timeline {
		for j, g := range groups {
			planned[j], realized[j] = g.at(day)
		}
		c.Planned[i] = domain.CurvePoint{Date: day, Percent: WeightedGroupPercent(planned, subHours)}
		c.Realized[i] = domain.CurvePoint{Date: day, Percent: WeightedGroupPercent(realized, subHours)}
	}
	return c
}
