package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/repository"
)

// curveLoader reads the records of a scope into curve builder inputs.
type curveLoader struct {
	subpackages repository.SubpackageRepo
	services    repository.ServiceRepo
	checklist   repository.ChecklistRepo
	events      repository.ProgressEventRepo
}

func (l curveLoader) serviceInput(ctx context.Context, svc *domain.Service) (curve.ServiceInput, error) {
	items, err := l.checklist.ListByService(ctx, svc.ID)
	if err != nil {
		return curve.ServiceInput{}, fmt.Errorf("loading checklist of %s: %w", svc.ID, err)
	}
	raws, err := l.events.ListRaw(ctx, svc.ID)
	if err != nil {
		return curve.ServiceInput{}, fmt.Errorf("loading progress of %s: %w", svc.ID, err)
	}
	return curve.ServiceInput{Service: *svc, Checklist: items, Raw: raws}, nil
}

func (l curveLoader) subpackageInput(ctx context.Context, sp *domain.Subpackage) (curve.SubpackageInput, error) {
	services, err := l.services.ListBySubpackage(ctx, sp.ID)
	if err != nil {
		return curve.SubpackageInput{}, fmt.Errorf("loading services of %s: %w", sp.ID, err)
	}
	in := curve.SubpackageInput{Subpackage: *sp}
	for _, svc := range services {
		si, err := l.serviceInput(ctx, svc)
		if err != nil {
			return curve.SubpackageInput{}, err
		}
		in.Services = append(in.Services, si)
	}
	return in, nil
}

func (l curveLoader) packageInputs(ctx context.Context, packageID string) ([]curve.SubpackageInput, error) {
	subs, err := l.subpackages.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("loading subpackages of %s: %w", packageID, err)
	}
	out := make([]curve.SubpackageInput, 0, len(subs))
	for _, sp := range subs {
		in, err := l.subpackageInput(ctx, sp)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func countServices(subs []curve.SubpackageInput) int {
	n := 0
	for _, sp := range subs {
		n += len(sp.Services)
	}
	return n
}
