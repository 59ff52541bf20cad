package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver counts use-case outcomes and curve diagnostics in its own
// Prometheus registry. A CLI process is short-lived, so the registry is written
// to a node-exporter textfile instead of being scraped.
type MetricsObserver struct {
	registry   *prometheus.Registry
	calls      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rawEvents  *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	duplicates *prometheus.CounterVec
}

func NewMetricsObserver() *MetricsObserver {
	m := &MetricsObserver{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "scurve",
				Name:      "use_case_total",
				Help:      "Use-case executions by outcome.",
			},
			[]string{"use_case", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "scurve",
				Name:      "use_case_duration_seconds",
				Help:      "Use-case execution time in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"use_case"},
		),
		rawEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "scurve",
				Name:      "progress_events_read_total",
				Help:      "Raw progress records read while building curves.",
			},
			[]string{"use_case"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "scurve",
				Name:      "progress_events_dropped_total",
				Help:      "Progress records ignored because no calendar day could be read.",
			},
			[]string{"use_case"},
		),
		duplicates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "scurve",
				Name:      "progress_events_duplicate_total",
				Help:      "Progress records collapsed by deduplication.",
			},
			[]string{"use_case"},
		),
	}
	m.registry.MustRegister(m.calls, m.duration, m.rawEvents, m.dropped, m.duplicates)
	return m
}

func (m *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	outcome := "success"
	if !event.Success {
		outcome = "error"
	}
	m.calls.WithLabelValues(event.Name, outcome).Inc()
	m.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	addCount(m.rawEvents, event, "raw_events")
	addCount(m.dropped, event, "dropped_events")
	addCount(m.duplicates, event, "duplicate_events")
}

// Registry exposes the observer's registry for gathering.
func (m *MetricsObserver) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *MetricsObserver) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func addCount(c *prometheus.CounterVec, event UseCaseEvent, field string) {
	n, ok := event.Fields[field].(int)
	if !ok || n <= 0 {
		return
	}
	c.WithLabelValues(event.Name).Add(float64(n))
}
