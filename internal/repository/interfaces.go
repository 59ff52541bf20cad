package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/scurve/internal/domain"
)

// ErrNotFound is wrapped by every Get that matches no row.
var ErrNotFound = errors.New("not found")

type PackageRepo interface {
	Create(ctx context.Context, p *domain.Package) error
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	List(ctx context.Context) ([]*domain.Package, error)
	Delete(ctx context.Context, id string) error
}

type SubpackageRepo interface {
	Create(ctx context.Context, sp *domain.Subpackage) error
	GetByID(ctx context.Context, id string) (*domain.Subpackage, error)
	ListByPackage(ctx context.Context, packageID string) ([]*domain.Subpackage, error)
}

type ServiceRepo interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListBySubpackage(ctx context.Context, subpackageID string) ([]*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
}

type ChecklistRepo interface {
	Upsert(ctx context.Context, item *domain.ChecklistItem) error
	Get(ctx context.Context, serviceID, itemID string) (*domain.ChecklistItem, error)
	ListByService(ctx context.Context, serviceID string) ([]domain.ChecklistItem, error)
}

// ProgressEventRepo stores progress reports exactly as received.
type ProgressEventRepo interface {
	// Append stores raw and returns its sequence number. eventID may be empty.
	Append(ctx context.Context, serviceID, eventID string, raw domain.RawEvent) (int64, error)
	ListRaw(ctx context.Context, serviceID string) ([]domain.RawEvent, error)
	CountByService(ctx context.Context, serviceID string) (int, error)
}

type OverlayRepo interface {
	Get(ctx context.Context, serviceID string) (*domain.ProgressOverlay, error)
	Upsert(ctx context.Context, o *domain.ProgressOverlay) error
	Delete(ctx context.Context, serviceID string) error
}
