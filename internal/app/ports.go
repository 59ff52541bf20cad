package app

import (
	"context"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/importer"
)

type CurveUseCase interface {
	ServiceCurve(ctx context.Context, req CurveRequest) (*CurveResponse, error)
	SubpackageCurve(ctx context.Context, req CurveRequest) (*CurveResponse, error)
	PackageCurve(ctx context.Context, req CurveRequest) (*CurveResponse, error)
}

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type ProgressUseCase interface {
	LogManual(ctx context.Context, req ManualEntryRequest) (*ProgressView, error)
	SetChecklistItem(ctx context.Context, serviceID, itemID string, progress float64) (*ProgressView, error)
	Current(ctx context.Context, serviceID string) (*ProgressView, error)
}

type CatalogUseCase interface {
	ListPackages(ctx context.Context) ([]PackageSummary, error)
	PackageTree(ctx context.Context, packageID string) (*PackageTree, error)
}

type ImportResult struct {
	Package         *domain.Package
	SubpackageCount int
	ServiceCount    int
	ChecklistCount  int
	ReportCount     int
}

type ImportPackageUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
