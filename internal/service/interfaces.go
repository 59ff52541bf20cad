package service

import (
	"context"

	"github.com/alexanderramin/scurve/internal/app"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/importer"
)

type CurveService interface {
	ServiceCurve(ctx context.Context, req contract.CurveRequest) (*contract.CurveResponse, error)
	SubpackageCurve(ctx context.Context, req contract.CurveRequest) (*contract.CurveResponse, error)
	PackageCurve(ctx context.Context, req contract.CurveRequest) (*contract.CurveResponse, error)
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}

type ProgressService interface {
	LogManual(ctx context.Context, req contract.ManualEntryRequest) (*contract.ProgressView, error)
	SetChecklistItem(ctx context.Context, serviceID, itemID string, progress float64) (*contract.ProgressView, error)
	Current(ctx context.Context, serviceID string) (*contract.ProgressView, error)
}

type CatalogService interface {
	ListPackages(ctx context.Context) ([]contract.PackageSummary, error)
	PackageTree(ctx context.Context, packageID string) (*contract.PackageTree, error)
}

// ImportResult holds the outcome of a package import.
type ImportResult = app.ImportResult

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

var (
	_ app.CurveUseCase         = CurveService(nil)
	_ app.StatusUseCase        = StatusService(nil)
	_ app.ProgressUseCase      = ProgressService(nil)
	_ app.ImportPackageUseCase = ImportService(nil)
	_ app.CatalogUseCase       = CatalogService(nil)
)
