// Package telemetry wires OpenTelemetry trace export for vecstore.
//
// When telemetry is disabled the package installs nothing; the tracers
// obtained via otel.Tracer throughout the codebase fall back to the
// global no-op provider, so instrumentation has no runtime cost.
package telemetry

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/vecstore/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry manages the tracer provider lifecycle.
type Telemetry struct {
	enabled        bool
	tracerProvider *sdktrace.TracerProvider
}

// New initializes trace export from the telemetry settings.
//
// Disabled settings return a no-op instance whose Shutdown does nothing.
// When enabled, spans export over OTLP/HTTP to the configured endpoint
// and the provider is installed globally so every otel.Tracer call in
// the codebase picks it up.
func New(ctx context.Context, settings config.TelemetrySettings) (*Telemetry, error) {
	if !settings.Enabled {
		return &Telemetry{}, nil
	}

	opts := []otlptracehttp.Option{}
	if settings.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(settings.Endpoint))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", settings.ServiceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Telemetry{
		enabled:        true,
		tracerProvider: tp,
	}, nil
}

// Enabled reports whether trace export is active.
func (t *Telemetry) Enabled() bool {
	return t != nil && t.enabled
}

// Shutdown flushes pending spans and stops the provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.tracerProvider == nil {
		return nil
	}
	if err := t.tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("trace provider shutdown: %w", err)
	}
	return nil
}
