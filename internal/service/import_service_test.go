package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/importer"
	"github.com/alexanderramin/scurve/internal/repository"
	"github.com/alexanderramin/scurve/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Package: importer.PackageImport{Name: "Refinery 2024"},
		Subpackages: []importer.SubpackageImport{
			{Ref: "boiler", Name: "Boiler", Order: 1},
			{Ref: "piping", Name: "Piping", Order: 2},
		},
		Services: []importer.ServiceImport{
			{
				Ref: "valves", SubpackageRef: "boiler", Name: "Valves", TotalHours: 40,
				PlannedStart: strPtr("2024-01-01"), PlannedEnd: strPtr("2024-01-11"),
				Checklist: []importer.ChecklistImport{{ID: "remove", Weight: 50}, {ID: "install", Weight: 50}},
				Reports: []importer.RawReport{
					{"id": "r1", "workedDay": "2024-01-06", "percent": 50.0},
					{"id": "tmp-7", "workedDay": "06/01/2024", "percent": 50.0},
				},
			},
			{
				Ref: "lines", SubpackageRef: "piping", Name: "Lines", TotalHours: 60,
				PlannedStart: strPtr("2024-01-01"), PlannedEnd: strPtr("2024-01-11"),
			},
		},
	}
}

func TestImportService_ImportSchema(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	ctx := context.Background()

	result, err := e.imports.ImportSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, result.SubpackageCount)
	assert.Equal(t, 2, result.ServiceCount)
	assert.Equal(t, 2, result.ChecklistCount)
	assert.Equal(t, 2, result.ReportCount)

	req := contract.NewCurveRequest(domain.ScopePackage, result.Package.ID)
	req.On = dayPtr(2024, 1, 6)
	resp, err := e.curves.PackageCurve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.TotalHours)
	assert.InDelta(t, 20.0, resp.Indicators.Realized, 1e-9)
	assert.Equal(t, 2, resp.Diagnostics.RawEvents)
}

func TestImportService_ImportFile_YAML(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	path := filepath.Join(t.TempDir(), "pkg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
package:
  name: Tank Farm
subpackages:
  - ref: t1
    name: Tank 1
services:
  - ref: clean
    subpackage_ref: t1
    name: Clean tank
    total_hours: 8
    planned_start: 2024-02-01
    planned_end: 2024-02-05
`), 0o644))

	result, err := e.imports.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Tank Farm", result.Package.Name)

	subs, err := e.subpackages.ListByPackage(context.Background(), result.Package.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	services, err := e.services.ListBySubpackage(context.Background(), subs[0].ID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.True(t, services[0].HasRange())
}

func TestImportService_ValidationErrorsAreJoined(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	schema := validImportSchema()
	schema.Package.Name = ""
	schema.Services[1].SubpackageRef = "missing"

	_, err := e.imports.ImportSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "package.name is required")
	assert.Contains(t, err.Error(), `services[1].subpackage_ref "missing" not found`)

	packages, err := e.packages.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, packages)
}

func TestImportService_RollbackOnSubpackageFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	// ExecContext calls: #1 = package, #2 = subpackage "Boiler", #3 = subpackage "Piping".
	failUoW := &testutil.FaultyUoW{
		DB:         database,
		FailExecOn: 3,
		Err:        fmt.Errorf("injected subpackage create failure"),
	}
	svc := NewImportService(failUoW)

	_, err := svc.ImportSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected subpackage create failure")
	assert.Equal(t, 3, failUoW.Execs(), "import should stop at the failing write")

	packages, err := repository.NewSQLitePackageRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, packages, "no packages should exist after rollback")
}

func TestImportService_RollbackOnReportFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	// 1 package + 2 subpackages + 2 services + 2 checklist items, then the first report.
	failUoW := &testutil.FaultyUoW{
		DB:         database,
		FailExecOn: 8,
		Err:        fmt.Errorf("injected report failure"),
	}
	_, err := NewImportService(failUoW).ImportSchema(ctx, validImportSchema())
	require.Error(t, err)

	for _, table := range []string{"packages", "subpackages", "services", "checklist_items", "progress_events"} {
		assert.Zero(t, testutil.CountRows(t, database, table), table)
	}
}
