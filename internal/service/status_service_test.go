package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/scurve/internal/app"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addTrackedPackage creates a package with one 2024-01-01..2024-01-11 service
// that reported percent on 2024-01-06, when 50% was planned.
func addTrackedPackage(t *testing.T, e *testEnv, name string, percent float64) *domain.Package {
	t.Helper()
	pkg := e.addPackage(t, name)
	sp := e.addSubpackage(t, pkg.ID, "Main")
	svc := e.addService(t, sp.ID, name+" work",
		testutil.WithPlannedRange(testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 11)))
	e.report(t, svc.ID, testutil.NewTestReport(svc.ID, testutil.Day(2024, 1, 6), percent))
	return pkg
}

func statusAt(y int, m time.Month, d int) contract.StatusRequest {
	req := contract.NewStatusRequest()
	now := time.Date(y, m, d, 15, 0, 0, 0, time.UTC)
	req.Now = &now
	return req
}

func TestStatusService_SortsByRiskAndCounts(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	addTrackedPackage(t, e, "Alpha", 48)   // delta -2
	addTrackedPackage(t, e, "Bravo", 20)   // delta -30
	addTrackedPackage(t, e, "Charlie", 40) // delta -10

	resp, err := e.status.GetStatus(context.Background(), statusAt(2024, 1, 6))
	require.NoError(t, err)
	require.Len(t, resp.Packages, 3)

	assert.Equal(t, "Bravo", resp.Packages[0].PackageName)
	assert.Equal(t, domain.RiskCritical, resp.Packages[0].Indicators.Risk)
	assert.Equal(t, "Charlie", resp.Packages[1].PackageName)
	assert.Equal(t, domain.RiskAtRisk, resp.Packages[1].Indicators.Risk)
	assert.Equal(t, "Alpha", resp.Packages[2].PackageName)
	assert.Equal(t, domain.RiskOnTrack, resp.Packages[2].Indicators.Risk)

	assert.Equal(t, 3, resp.Summary.CountsTotal)
	assert.Equal(t, 1, resp.Summary.CountsCritical)
	assert.Equal(t, 1, resp.Summary.CountsAtRisk)
	assert.Equal(t, 1, resp.Summary.CountsOnTrack)
	assert.Equal(t, testutil.Day(2024, 1, 6), resp.Summary.ReferenceDay)
	assert.Equal(t, "Critical packages require attention", resp.Summary.PolicyMessage)
}

func TestStatusService_Scope(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	a := addTrackedPackage(t, e, "Alpha", 50)
	addTrackedPackage(t, e, "Bravo", 10)

	req := statusAt(2024, 1, 6)
	req.PackageScope = []string{a.ID}
	resp, err := e.status.GetStatus(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, a.ID, resp.Packages[0].PackageID)
	assert.Equal(t, "All packages on track", resp.Summary.PolicyMessage)
}

func TestStatusService_UnknownScope(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	addTrackedPackage(t, e, "Alpha", 50)

	req := statusAt(2024, 1, 6)
	req.PackageScope = []string{"nope"}
	_, err := e.status.GetStatus(context.Background(), req)

	var statusErr *app.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, app.StatusErrInvalidScope, statusErr.Code)
}

func TestStatusService_ReferenceDayUsesLocation(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	e := newTestEnv(t, saoPaulo)
	addTrackedPackage(t, e, "Alpha", 50)

	req := contract.NewStatusRequest()
	now := time.Date(2024, 1, 7, 1, 0, 0, 0, time.UTC) // 22:00 on the 6th in Sao Paulo
	req.Now = &now
	resp, err := e.status.GetStatus(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2024, 1, 6), resp.Summary.ReferenceDay)
}

func TestStatusService_NoPackages(t *testing.T) {
	e := newTestEnv(t, time.UTC)

	resp, err := e.status.GetStatus(context.Background(), contract.NewStatusRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Packages)
	assert.NotEmpty(t, resp.Warnings)
}

func TestStatusService_NotesEmptyPackage(t *testing.T) {
	e := newTestEnv(t, time.UTC)
	e.addPackage(t, "Empty")

	resp, err := e.status.GetStatus(context.Background(), statusAt(2024, 1, 6))
	require.NoError(t, err)
	require.Len(t, resp.Packages, 1)
	assert.Contains(t, resp.Packages[0].Notes, "no services")
}
