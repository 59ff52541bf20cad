package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/scurve/internal/app"
	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/repository"
)

type curveService struct {
	packages repository.PackageRepo
	loader   curveLoader
	loc      *time.Location
	observer UseCaseObserver
}

func NewCurveService(
	packages repository.PackageRepo,
	subpackages repository.SubpackageRepo,
	services repository.ServiceRepo,
	checklist repository.ChecklistRepo,
	events repository.ProgressEventRepo,
	loc *time.Location,
	observers ...UseCaseObserver,
) CurveService {
	return &curveService{
		packages: packages,
		loader: curveLoader{
			subpackages: subpackages,
			services:    services,
			checklist:   checklist,
			events:      events,
		},
		loc:      loc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *curveService) ServiceCurve(ctx context.Context, req app.CurveRequest) (resp *app.CurveResponse, err error) {
	defer s.observe(ctx, "curve.service", req.ID, time.Now().UTC(), &resp, &err)

	svc, err := s.loader.services.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	in, err := s.loader.serviceInput(ctx, svc)
	if err != nil {
		return nil, err
	}
	loc := s.location(req)
	c := curve.BuildServiceCurves(in, loc)
	resp = s.respond(req, domain.ScopeService, svc.Name, c, loc)
	if !svc.HasRange() || svc.Weight() == 0 {
		resp.Warnings = append(resp.Warnings, "service has no planned range or hours; planned curve is flat at 0")
	}
	return resp, nil
}

func (s *curveService) SubpackageCurve(ctx context.Context, req app.CurveRequest) (resp *app.CurveResponse, err error) {
	defer s.observe(ctx, "curve.subpackage", req.ID, time.Now().UTC(), &resp, &err)

	sp, err := s.loader.subpackages.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	in, err := s.loader.subpackageInput(ctx, sp)
	if err != nil {
		return nil, err
	}
	loc := s.location(req)
	c := curve.BuildCurves(in.Services, loc)
	resp = s.respond(req, domain.ScopeSubpackage, sp.Name, c, loc)
	if len(in.Services) == 0 {
		resp.Warnings = append(resp.Warnings, "subpackage has no services")
	}
	return resp, nil
}

func (s *curveService) PackageCurve(ctx context.Context, req app.CurveRequest) (resp *app.CurveResponse, err error) {
	defer s.observe(ctx, "curve.package", req.ID, time.Now().UTC(), &resp, &err)

	pkg, err := s.packages.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	subs, err := s.loader.packageInputs(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}
	loc := s.location(req)
	c := curve.BuildPackageCurves(subs, loc)
	resp = s.respond(req, domain.ScopePackage, pkg.Name, c, loc)
	if countServices(subs) == 0 {
		resp.Warnings = append(resp.Warnings, "package has no services")
	}
	return resp, nil
}

func (s *curveService) location(req app.CurveRequest) *time.Location {
	if req.Location != nil {
		return req.Location
	}
	if s.loc != nil {
		return s.loc
	}
	return time.UTC
}

func (s *curveService) respond(req app.CurveRequest, scope domain.Scope, name string, c curve.Curves, loc *time.Location) *app.CurveResponse {
	display := c.Display()
	resp := &app.CurveResponse{
		Scope:      scope,
		ID:         req.ID,
		Name:       name,
		TotalHours: c.TotalHours,
		Raw:        app.SeriesSet{Timeline: c.Timeline, Planned: c.Planned, Realized: c.Realized},
		Display:    app.SeriesSet{Timeline: display.Timeline, Planned: display.Planned, Realized: display.Realized},
		Indicators: c.Indicators(referenceDay(req.On, loc)),
		Diagnostics: app.Diagnostics{
			RawEvents:  c.Stats.RawEvents,
			Dropped:    c.Stats.Dropped,
			Duplicates: c.Stats.Duplicates,
		},
	}
	if c.TotalHours == 0 {
		resp.Warnings = append(resp.Warnings, "no service carries positive hours; aggregates are 0")
	}
	if c.Stats.Dropped > 0 {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%d progress record(s) had no readable date and were ignored", c.Stats.Dropped))
	}
	return resp
}

func (s *curveService) observe(ctx context.Context, name, id string, startedAt time.Time, resp **app.CurveResponse, err *error) {
	fields := map[string]any{"id": id}
	if *resp != nil {
		fields["points"] = len((*resp).Raw.Timeline)
		fields["raw_events"] = (*resp).Diagnostics.RawEvents
		fields["dropped_events"] = (*resp).Diagnostics.Dropped
		fields["duplicate_events"] = (*resp).Diagnostics.Duplicates
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}

// referenceDay resolves the indicator day: the given day, or today in loc.
func referenceDay(on *time.Time, loc *time.Location) time.Time {
	if on != nil {
		return curve.DayOf(*on, time.UTC)
	}
	return curve.DayOf(time.Now(), loc)
}
