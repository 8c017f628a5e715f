package observe

import (
	"context"
	"time"
)

// ExecuteFunc runs one health check and reports its status label.
// A non-nil error marks the execution as failed.
type ExecuteFunc func(ctx context.Context, check CheckMeta) (status string, err error)

// Middleware wraps check execution with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a goroutine-safe ExecuteFunc.
//   - Context: the span context is propagated into the wrapped function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware. Nil components are replaced
// with no-op implementations.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NopMiddleware returns a Middleware that records nothing.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// Wrap wraps fn with a span, check metrics and a log entry.
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, check CheckMeta) (string, error) {
		ctx, span := m.tracer.StartSpan(ctx, check)
		start := time.Now()

		status, err := fn(ctx, check)

		duration := time.Since(start)
		m.tracer.EndSpan(span, status, err)
		m.metrics.RecordCheck(ctx, check, status, duration, err)

		log := m.logger.WithCheck(check)
		fields := []Field{
			F("status", status),
			F("duration_ms", duration.Milliseconds()),
		}
		if err != nil {
			fields = append(fields, F("error", err.Error()))
			log.Warn(ctx, "health check failed", fields...)
		} else {
			log.Debug(ctx, "health check passed", fields...)
		}

		return status, err
	}
}

// ObserveReport records an aggregated report.
func (m *Middleware) ObserveReport(ctx context.Context, status string, components int, duration time.Duration) {
	m.metrics.RecordReport(ctx, status, components, duration)
	m.logger.Debug(ctx, "health report completed",
		F("status", status),
		F("components", components),
		F("duration_ms", duration.Milliseconds()),
	)
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
