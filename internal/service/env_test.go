package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/repository"
	"github.com/alexanderramin/scurve/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires every repository and use case against one in-memory database.
type testEnv struct {
	packages    *repository.SQLitePackageRepo
	subpackages *repository.SQLiteSubpackageRepo
	services    *repository.SQLiteServiceRepo
	checklist   *repository.SQLiteChecklistRepo
	events      *repository.SQLiteProgressEventRepo
	overlays    *repository.SQLiteOverlayRepo
	uow         db.UnitOfWork

	curves   CurveService
	status   StatusService
	progress *progressService
	imports  ImportService
	catalog  CatalogService
}

func newTestEnv(t *testing.T, loc *time.Location, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	e := &testEnv{
		packages:    repository.NewSQLitePackageRepo(database),
		subpackages: repository.NewSQLiteSubpackageRepo(database),
		services:    repository.NewSQLiteServiceRepo(database),
		checklist:   repository.NewSQLiteChecklistRepo(database),
		events:      repository.NewSQLiteProgressEventRepo(database),
		overlays:    repository.NewSQLiteOverlayRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
	e.curves = NewCurveService(e.packages, e.subpackages, e.services, e.checklist, e.events, loc, observers...)
	e.status = NewStatusService(e.packages, e.subpackages, e.services, e.checklist, e.events, loc, observers...)
	e.progress = NewProgressService(e.services, e.checklist, e.overlays, e.uow, loc, observers...).(*progressService)
	e.imports = NewImportService(e.uow, observers...)
	e.catalog = NewCatalogService(e.packages, e.subpackages, e.services, e.checklist, e.overlays, observers...)
	return e
}

func (e *testEnv) setNow(t time.Time) {
	e.progress.now = func() time.Time { return t }
}

func (e *testEnv) addPackage(t *testing.T, name string) *domain.Package {
	t.Helper()
	p := testutil.NewTestPackage(name)
	require.NoError(t, e.packages.Create(context.Background(), p))
	return p
}

func (e *testEnv) addSubpackage(t *testing.T, packageID, name string) *domain.Subpackage {
	t.Helper()
	sp := testutil.NewTestSubpackage(packageID, name)
	require.NoError(t, e.subpackages.Create(context.Background(), sp))
	return sp
}

func (e *testEnv) addService(t *testing.T, subpackageID, name string, opts ...testutil.ServiceOption) *domain.Service {
	t.Helper()
	s := testutil.NewTestService(subpackageID, name, opts...)
	require.NoError(t, e.services.Create(context.Background(), s))
	return s
}

func (e *testEnv) addItem(t *testing.T, serviceID, id string, weight float64, opts ...testutil.ChecklistOption) {
	t.Helper()
	require.NoError(t, e.checklist.Upsert(context.Background(), testutil.NewTestChecklistItem(serviceID, id, weight, opts...)))
}

func (e *testEnv) report(t *testing.T, serviceID string, raw domain.RawEvent) {
	t.Helper()
	id, _ := raw["id"].(string)
	_, err := e.events.Append(context.Background(), serviceID, id, raw)
	require.NoError(t, err)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := testutil.Day(y, m, d)
	return &t
}
