package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/importer"
	"github.com/alexanderramin/scurve/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"package": schema.Package.Name}
	defer func() {
		if result != nil {
			fields["services"] = result.ServiceCount
			fields["reports"] = result.ReportCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("import validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPackages := repository.NewSQLitePackageRepo(tx)
		txSubpackages := repository.NewSQLiteSubpackageRepo(tx)
		txServices := repository.NewSQLiteServiceRepo(tx)
		txChecklist := repository.NewSQLiteChecklistRepo(tx)
		txEvents := repository.NewSQLiteProgressEventRepo(tx)

		if err := txPackages.Create(ctx, generated.Package); err != nil {
			return fmt.Errorf("creating package: %w", err)
		}
		for _, sp := range generated.Subpackages {
			if err := txSubpackages.Create(ctx, sp); err != nil {
				return fmt.Errorf("creating subpackage %q: %w", sp.Name, err)
			}
		}
		for _, svc := range generated.Services {
			if err := txServices.Create(ctx, svc); err != nil {
				return fmt.Errorf("creating service %q: %w", svc.Name, err)
			}
		}
		for _, item := range generated.Checklist {
			if err := txChecklist.Upsert(ctx, item); err != nil {
				return fmt.Errorf("creating checklist item %q: %w", item.ID, err)
			}
		}
		for _, r := range generated.Reports {
			if _, err := txEvents.Append(ctx, r.ServiceID, reportID(r), r.Raw); err != nil {
				return fmt.Errorf("storing progress report: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Package:         generated.Package,
		SubpackageCount: len(generated.Subpackages),
		ServiceCount:    len(generated.Services),
		ChecklistCount:  len(generated.Checklist),
		ReportCount:     len(generated.Reports),
	}, nil
}

// reportID is the persisted identity of a raw report, empty when it has none.
func reportID(r importer.Report) string {
	e, ok := curve.NormalizeEvent(r.Raw, curve.NormalizeOptions{ServiceID: r.ServiceID})
	if !ok || !curve.HasPersistedID(e) {
		return ""
	}
	return e.ID
}
