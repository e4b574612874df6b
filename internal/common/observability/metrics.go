// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	scoreCounter  otelmetric.Int64Counter
	scoreDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	scoreCounter, _ := meter.Int64Counter(
		"scores.computed",
		otelmetric.WithDescription("Number of scoring calls completed"),
	)

	scoreDuration, _ := meter.Float64Histogram(
		"scores.duration",
		otelmetric.WithDescription("Scoring call duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		scoreCounter:  scoreCounter,
		scoreDuration: scoreDuration,
	}
}

func (o *Observability) RecordScore(ctx context.Context, domain, provenance string) {
	if o.scoreCounter != nil {
		o.scoreCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("provenance", provenance),
		))
	}
}

func (o *Observability) RecordScoreDuration(ctx context.Context, duration time.Duration, domain string) {
	if o.scoreDuration != nil {
		o.scoreDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("domain", domain),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
