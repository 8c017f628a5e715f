package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records health check and report metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCheck records one check execution. A non-nil err counts as a failure.
	RecordCheck(ctx context.Context, meta CheckMeta, status string, duration time.Duration, err error)

	// RecordReport records one aggregated report.
	RecordReport(ctx context.Context, status string, components int, duration time.Duration)
}

type metricsImpl struct {
	checkTotal     metric.Int64Counter
	checkFailures  metric.Int64Counter
	checkDuration  metric.Float64Histogram
	reportTotal    metric.Int64Counter
	reportDuration metric.Float64Histogram
}

// NewMetrics creates Metrics backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	checkTotal, err := meter.Int64Counter(
		"health.check.total",
		metric.WithDescription("Total number of health check executions"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	checkFailures, err := meter.Int64Counter(
		"health.check.failures",
		metric.WithDescription("Health check executions that did not report healthy"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	checkDuration, err := meter.Float64Histogram(
		"health.check.duration_ms",
		metric.WithDescription("Health check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	reportTotal, err := meter.Int64Counter(
		"health.report.total",
		metric.WithDescription("Total number of aggregated health reports"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, err
	}

	reportDuration, err := meter.Float64Histogram(
		"health.report.duration_ms",
		metric.WithDescription("Aggregated health report duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		checkTotal:     checkTotal,
		checkFailures:  checkFailures,
		checkDuration:  checkDuration,
		reportTotal:    reportTotal,
		reportDuration: reportDuration,
	}, nil
}

func (m *metricsImpl) RecordCheck(ctx context.Context, meta CheckMeta, status string, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String("health.check.name", meta.Name),
		attribute.String("health.check.status", status),
	)

	m.checkTotal.Add(ctx, 1, opt)
	if err != nil {
		m.checkFailures.Add(ctx, 1, opt)
	}
	m.checkDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordReport(ctx context.Context, status string, components int, duration time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("health.report.status", status),
		attribute.Int("health.report.components", components),
	)

	m.reportTotal.Add(ctx, 1, opt)
	m.reportDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

type noopMetrics struct{}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordCheck(context.Context, CheckMeta, string, time.Duration, error) {}

func (noopMetrics) RecordReport(context.Context, string, int, time.Duration) {}
