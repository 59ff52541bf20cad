package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func TestLogUseCaseObserver_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "curve.package",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"dropped_events": 2},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "import",
		Err:  errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, "use_case=curve.package")
	assert.Contains(t, out, "dropped_events=2")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
}

func TestLogUseCaseObserver_SortsFieldsAndFlagsSlowCalls(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, WithSlowThreshold(100*time.Millisecond))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "status",
		Duration: 250 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"services": 4, "at_risk": 1},
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "slow=true")
	assert.Less(t, strings.Index(out, "at_risk=1"), strings.Index(out, "services=4"))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}

	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	useCaseObserverOrNoop([]UseCaseObserver{a, nil, b}).ObserveUseCase(context.Background(), UseCaseEvent{Name: "import"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestMultiObserver_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	MultiObserver{a, nil, b}.ObserveUseCase(context.Background(), UseCaseEvent{Name: "status"})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, "status", b.events[0].Name)
}

func TestMetricsObserver_CountsOutcomesAndDiagnostics(t *testing.T) {
	m := NewMetricsObserver()
	ctx := context.Background()

	m.ObserveUseCase(ctx, UseCaseEvent{
		Name:    "curve.service",
		Success: true,
		Fields:  map[string]any{"raw_events": 5, "dropped_events": 1, "duplicate_events": 2},
	})
	m.ObserveUseCase(ctx, UseCaseEvent{Name: "curve.service", Err: errors.New("x")})

	assert.Equal(t, 1.0, promtest.ToFloat64(m.calls.WithLabelValues("curve.service", "success")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.calls.WithLabelValues("curve.service", "error")))
	assert.Equal(t, 5.0, promtest.ToFloat64(m.rawEvents.WithLabelValues("curve.service")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.dropped.WithLabelValues("curve.service")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.duplicates.WithLabelValues("curve.service")))
}

func TestMetricsObserver_WriteTextfile(t *testing.T) {
	m := NewMetricsObserver()
	m.ObserveUseCase(context.Background(), UseCaseEvent{Name: "status", Success: true})

	path := filepath.Join(t.TempDir(), "scurve.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `scurve_use_case_total{outcome="success",use_case="status"} 1`))
}

func TestCurveService_ReportsDiagnosticsToObserver(t *testing.T) {
	rec := &recordingObserver{}
	e := newTestEnv(t, time.UTC, rec)
	pkg := e.addPackage(t, "P")
	sp := e.addSubpackage(t, pkg.ID, "S")
	svc := e.addService(t, sp.ID, "A")
	e.report(t, svc.ID, testutil.NewTestReport(svc.ID, testutil.Day(2024, 1, 3), 10))
	e.report(t, svc.ID, domain.RawEvent{"percent": 5.0})

	_, err := e.curves.ServiceCurve(context.Background(), contract.NewCurveRequest(domain.ScopeService, svc.ID))
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, "curve.service", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["raw_events"])
	assert.Equal(t, 1, ev.Fields["dropped_events"])
}
