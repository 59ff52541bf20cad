package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"
)

// UseCaseEvent is emitted once per service call, after it returns.
// Fields carries call-specific counters such as dropped progress events.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// LogObserverOption tunes the log observer.
type LogObserverOption func(*logUseCaseObserver)

// WithSlowThreshold logs successful calls at WARN once they take at least d.
// Curve aggregation over a large package is the usual culprit.
func WithSlowThreshold(d time.Duration) LogObserverOption {
	return func(o *logUseCaseObserver) { o.slow = d }
}

type logUseCaseObserver struct {
	logger *slog.Logger
	slow   time.Duration
}

// NewLogUseCaseObserver writes one logfmt record per use case to w.
func NewLogUseCaseObserver(w io.Writer, opts ...LogObserverOption) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	o := &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	// Map order is random; sort so records diff cleanly between runs.
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	switch {
	case event.Err != nil:
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		level = slog.LevelError
	case o.slow > 0 && event.Duration >= o.slow:
		attrs = append(attrs, slog.Bool("slow", true))
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(ctx, level, "use_case", attrs...)
}

// useCaseObserverOrNoop collapses the variadic observers services accept.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	live := make(MultiObserver, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

// MultiObserver fans an event out to every non-nil observer.
type MultiObserver []UseCaseObserver

func (m MultiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		if obs != nil {
			obs.ObserveUseCase(ctx, event)
		}
	}
}
