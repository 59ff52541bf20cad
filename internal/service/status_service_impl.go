package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/scurve/internal/app"
	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/repository"
)

type statusService struct {
	packages repository.PackageRepo
	loader   curveLoader
	loc      *time.Location
	observer UseCaseObserver
}

func NewStatusService(
	packages repository.PackageRepo,
	subpackages repository.SubpackageRepo,
	services repository.ServiceRepo,
	checklist repository.ChecklistRepo,
	events repository.ProgressEventRepo,
	loc *time.Location,
	observers ...UseCaseObserver,
) StatusService {
	return &statusService{
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

func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (resp *app.StatusResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "status",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	loc := req.Location
	if loc == nil {
		loc = s.loc
	}
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	day := curve.DayOf(now, loc)

	packages, err := s.packages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	packages, err = filterPackagesByScope(packages, req.PackageScope)
	if err != nil {
		return nil, err
	}

	views := make([]app.PackageStatusView, 0, len(packages))
	var stats curve.BuildStats
	for _, pkg := range packages {
		subs, err := s.loader.packageInputs(ctx, pkg.ID)
		if err != nil {
			return nil, err
		}
		c := curve.BuildPackageCurves(subs, loc)
		stats.RawEvents += c.Stats.RawEvents
		stats.Dropped += c.Stats.Dropped
		stats.Duplicates += c.Stats.Duplicates

		view := app.PackageStatusView{
			PackageID:       pkg.ID,
			PackageName:     pkg.Name,
			SubpackageCount: len(subs),
			ServiceCount:    countServices(subs),
			TotalHours:      c.TotalHours,
			Indicators:      c.Indicators(day),
		}
		if view.ServiceCount == 0 {
			view.Notes = append(view.Notes, "no services")
		} else if c.TotalHours == 0 {
			view.Notes = append(view.Notes, "no service carries positive hours")
		}
		if c.Stats.Dropped > 0 {
			view.Notes = append(view.Notes, fmt.Sprintf("%d undated progress record(s) ignored", c.Stats.Dropped))
		}
		views = append(views, view)
	}

	sortStatusViews(views)

	fields["packages"] = len(views)
	fields["raw_events"] = stats.RawEvents
	fields["dropped_events"] = stats.Dropped
	fields["duplicate_events"] = stats.Duplicates

	resp = &app.StatusResponse{
		Summary:  buildStatusSummary(views, now, day),
		Packages: views,
	}
	if len(views) == 0 {
		resp.Warnings = append(resp.Warnings, "no packages found; import one with `scurve import`")
	}
	return resp, nil
}

func filterPackagesByScope(packages []*domain.Package, scope []string) ([]*domain.Package, error) {
	if len(scope) == 0 {
		return packages, nil
	}
	byID := make(map[string]*domain.Package, len(packages))
	for _, p := range packages {
		byID[p.ID] = p
	}
	out := make([]*domain.Package, 0, len(scope))
	for _, id := range scope {
		p, ok := byID[id]
		if !ok {
			return nil, &app.StatusError{Code: app.StatusErrInvalidScope, Message: fmt.Sprintf("unknown package %q", id)}
		}
		out = append(out, p)
	}
	return out, nil
}

// sortStatusViews orders by risk, then by how far behind plan, then by name.
func sortStatusViews(views []app.PackageStatusView) {
	sort.SliceStable(views, func(i, j int) bool {
		ri := curve.RiskPriority(views[i].Indicators.Risk)
		rj := curve.RiskPriority(views[j].Indicators.Risk)
		if ri != rj {
			return ri < rj
		}
		if views[i].Indicators.Delta != views[j].Indicators.Delta {
			return views[i].Indicators.Delta < views[j].Indicators.Delta
		}
		return views[i].PackageName < views[j].PackageName
	})
}

func buildStatusSummary(views []app.PackageStatusView, now, day time.Time) app.StatusSummary {
	var countOnTrack, countAtRisk, countCritical int
	for _, v := range views {
		switch v.Indicators.Risk {
		case domain.RiskOnTrack:
			countOnTrack++
		case domain.RiskAtRisk:
			countAtRisk++
		case domain.RiskCritical:
			countCritical++
		}
	}

	policyMsg := "All packages on track"
	if countCritical > 0 {
		policyMsg = "Critical packages require attention"
	} else if countAtRisk > 0 {
		policyMsg = "Some packages behind plan, monitor closely"
	}

	return app.StatusSummary{
		GeneratedAt:    now,
		ReferenceDay:   day,
		CountsTotal:    countOnTrack + countAtRisk + countCritical,
		CountsOnTrack:  countOnTrack,
		CountsAtRisk:   countAtRisk,
		CountsCritical: countCritical,
		PolicyMessage:  policyMsg,
	}
}
