package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Values of the status label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records use case operations. Domains are "clips", "backup" and
// "applock"; operations are prefixed by their domain, e.g. "clip_insert".
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

// counterHistogram pairs an event counter with a latency histogram in seconds.
type counterHistogram struct {
	count   metric.Int64Counter
	seconds metric.Float64Histogram
}

func newCounterHistogram(
	meter metric.Meter,
	counterName, histogramName, unit, subject string,
) (*counterHistogram, error) {
	count, err := meter.Int64Counter(
		counterName,
		metric.WithDescription("Total number of "+subject),
		metric.WithUnit(unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", subject, err)
	}

	seconds, err := meter.Float64Histogram(
		histogramName,
		metric.WithDescription("Duration of "+subject+" in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", subject, err)
	}

	return &counterHistogram{count: count, seconds: seconds}, nil
}

type businessMetrics struct {
	*counterHistogram
}

// NewBusinessMetrics exports <namespace>_operations_total and
// <namespace>_operation_duration_seconds.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	instruments, err := newCounterHistogram(
		meterProvider.Meter(namespace),
		namespace+"_operations_total",
		namespace+"_operation_duration_seconds",
		"{operation}",
		"business operations",
	)
	if err != nil {
		return nil, err
	}
	return &businessMetrics{instruments}, nil
}

func operationAttributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.count.Add(ctx, 1, operationAttributes(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.seconds.Record(ctx, duration.Seconds(), operationAttributes(domain, operation, status))
}

// Status maps an operation result to its status label.
func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// Observe records the count and the duration of an operation that began at start.
func Observe(ctx context.Context, m BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := Status(err)
	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

// NoOpBusinessMetrics discards everything. The container uses it when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (n *NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}
