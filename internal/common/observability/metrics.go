package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records per-operation counters and latencies through OpenTelemetry.
// The exporter registers with the default prometheus registry, so the values show up
// on /metrics next to the promauto vectors.
type Observability struct {
	meterProvider     *metric.MeterProvider
	meter             otelmetric.Meter
	operationCounter  otelmetric.Int64Counter
	operationDuration otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return newWithProvider(provider, serviceName), nil
}

// NewNoop returns an Observability that drops every measurement.
func NewNoop() *Observability {
	return &Observability{}
}

func newWithProvider(provider *metric.MeterProvider, serviceName string) *Observability {
	meter := provider.Meter(serviceName)

	operationCounter, _ := meter.Int64Counter(
		"roster.operations",
		otelmetric.WithDescription("Number of roster operations processed"),
	)

	operationDuration, _ := meter.Float64Histogram(
		"roster.operation.duration",
		otelmetric.WithDescription("Roster operation processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:     provider,
		meter:             meter,
		operationCounter:  operationCounter,
		operationDuration: operationDuration,
	}
}

func (o *Observability) RecordOperation(ctx context.Context, operation, status string) {
	if o.operationCounter != nil {
		o.operationCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordDuration(ctx context.Context, operation string, duration time.Duration, status string) {
	if o.operationDuration != nil {
		o.operationDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
