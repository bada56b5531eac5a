package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dispatch and correlation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records one dispatch with its outcome.
	RecordDispatch(ctx context.Context, kind string, handled bool, duration time.Duration, err error)

	// RecordReply records a pending reply callback firing.
	// source is "reply", "bounce", or "no_reply".
	RecordReply(ctx context.Context, source string)

	// RecordPending records the number of outstanding replies after a change.
	RecordPending(ctx context.Context, delta int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	dispatchErrors  metric.Int64Counter
	replies         metric.Int64Counter
	pending         metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("toolbox")

	dispatches, err := meter.Int64Counter("toolbox.dispatch.count",
		metric.WithDescription("Number of dispatched events"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("toolbox.dispatch.latency_ms",
		metric.WithDescription("Dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	dispatchErrors, err := meter.Int64Counter("toolbox.dispatch.errors",
		metric.WithDescription("Number of dispatches aborted by an error"),
	)
	if err != nil {
		return nil, err
	}

	replies, err := meter.Int64Counter("toolbox.reply.fired",
		metric.WithDescription("Number of pending reply callbacks fired"),
	)
	if err != nil {
		return nil, err
	}

	pending, err := meter.Int64UpDownCounter("toolbox.reply.pending",
		metric.WithDescription("Number of outstanding reply callbacks"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		dispatchErrors:  dispatchErrors,
		replies:         replies,
		pending:         pending,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records one dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, kind string, handled bool, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("handled", handled),
	)
	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.dispatchErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// RecordReply records a reply callback firing.
func (m *otelMetrics) RecordReply(ctx context.Context, source string) {
	m.replies.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordPending adjusts the outstanding reply gauge.
func (m *otelMetrics) RecordPending(ctx context.Context, delta int64) {
	m.pending.Add(ctx, delta)
}
