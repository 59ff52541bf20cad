package service

import (
	"context"
	"time"

	"github.com/alexanderramin/scurve/internal/app"
	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/repository"
)

type catalogService struct {
	packages    repository.PackageRepo
	subpackages repository.SubpackageRepo
	services    repository.ServiceRepo
	checklist   repository.ChecklistRepo
	overlays    repository.OverlayRepo
	observer    UseCaseObserver
}

// NewCatalogService lists the package hierarchy with each service's
// reconciled progress.
func NewCatalogService(
	packages repository.PackageRepo,
	subpackages repository.SubpackageRepo,
	services repository.ServiceRepo,
	checklist repository.ChecklistRepo,
	overlays repository.OverlayRepo,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		packages:    packages,
		subpackages: subpackages,
		services:    services,
		checklist:   checklist,
		overlays:    overlays,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) ListPackages(ctx context.Context) (out []app.PackageSummary, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "package_list",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"packages": len(out)},
		})
	}()

	pkgs, err := s.packages.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]app.PackageSummary, 0, len(pkgs))
	for _, p := range pkgs {
		row := app.PackageSummary{Package: *p}
		subs, err := s.subpackages.ListByPackage(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		row.SubpackageCount = len(subs)
		for _, sp := range subs {
			svcs, err := s.services.ListBySubpackage(ctx, sp.ID)
			if err != nil {
				return nil, err
			}
			row.ServiceCount += len(svcs)
			for _, svc := range svcs {
				row.TotalHours += svc.Weight()
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *catalogService) PackageTree(ctx context.Context, packageID string) (tree *app.PackageTree, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": packageID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "package_tree",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	subs, err := s.subpackages.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	tree = &app.PackageTree{Package: *pkg}
	services := 0
	for _, sp := range subs {
		node := app.SubpackageNode{Subpackage: *sp}
		svcs, err := s.services.ListBySubpackage(ctx, sp.ID)
		if err != nil {
			return nil, err
		}
		for _, svc := range svcs {
			items, err := s.checklist.ListByService(ctx, svc.ID)
			if err != nil {
				return nil, err
			}
			manual, err := manualOverlay(ctx, s.overlays, svc.ID)
			if err != nil {
				return nil, err
			}
			rec := curve.Reconcile(checklistState(items), manual)
			node.Services = append(node.Services, app.ServiceNode{
				Service:        *svc,
				ChecklistCount: len(items),
				Percent:        rec.Percent,
				Source:         rec.Source,
			})
			node.TotalHours += svc.Weight()
		}
		services += len(node.Services)
		tree.TotalHours += node.TotalHours
		tree.Subpackages = append(tree.Subpackages, node)
	}
	fields["subpackages"] = len(tree.Subpackages)
	fields["services"] = services
	return tree, nil
}
