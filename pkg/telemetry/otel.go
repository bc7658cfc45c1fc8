package telemetry

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider holds the configured tracer and meter for the service.
type Provider struct {
	TraceProvider *sdktrace.TracerProvider
	Tracer        trace.Tracer
	Meter         metric.Meter
	serviceName   string
}

// Init configures OpenTelemetry from the environment and installs the
// global providers.
func Init(serviceName string) (*Provider, error) {
	if os.Getenv("OTEL_SDK_DISABLED") == "true" {
		return &Provider{
			Tracer: otel.Tracer("noop"),
			Meter:  otel.Meter("noop"),
		}, nil
	}

	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
		if serviceName == "" {
			serviceName = "souqna"
		}
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion()),
		semconv.DeploymentEnvironmentKey.String(environment()),
	)

	traceProvider, err := setupTraceProvider(res)
	if err != nil {
		return nil, fmt.Errorf("failed to setup trace provider: %w", err)
	}

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &Provider{
		TraceProvider: traceProvider,
		Tracer:        traceProvider.Tracer("souqna"),
		Meter:         otel.GetMeterProvider().Meter("souqna"),
		serviceName:   serviceName,
	}, nil
}

// setupTraceProvider picks the span exporter from the environment.
func setupTraceProvider(res *resource.Resource) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		return sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler()),
		), nil
	}

	if os.Getenv("OTEL_TRACES_STDOUT") == "true" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		return sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		), nil
	}

	// No exporter configured: spans are created but never shipped
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	), nil
}

func sampler() sdktrace.Sampler {
	if os.Getenv("OTEL_TRACES_SAMPLER") != "traceidratio" {
		return sdktrace.AlwaysSample()
	}
	ratio, err := strconv.ParseFloat(os.Getenv("OTEL_TRACES_SAMPLER_ARG"), 64)
	if err != nil || ratio <= 0 || ratio > 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.TraceIDRatioBased(ratio)
}

func serviceVersion() string {
	if version := os.Getenv("OTEL_SERVICE_VERSION"); version != "" {
		return version
	}
	return "1.0.0"
}

func environment() string {
	if env := os.Getenv("DEPLOYMENT_ENVIRONMENT"); env != "" {
		return env
	}
	return "development"
}

// RecordIntent counts one storefront intent by name and outcome.
func (p *Provider) RecordIntent(ctx context.Context, intent string, err error) {
	counter, counterErr := p.Meter.Int64Counter(
		"storefront_intents_total",
		metric.WithDescription("Total storefront intents processed"),
	)
	if counterErr != nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("status", status),
		attribute.String("service", p.serviceName),
	))
}

// RecordAssistantExchange records one assistant round trip.
func (p *Provider) RecordAssistantExchange(ctx context.Context, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	if counter, counterErr := p.Meter.Int64Counter(
		"assistant_exchanges_total",
		metric.WithDescription("Total assistant exchanges"),
	); counterErr == nil {
		counter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("status", status),
		))
	}

	if histogram, histErr := p.Meter.Float64Histogram(
		"assistant_exchange_duration_seconds",
		metric.WithDescription("Assistant exchange duration"),
	); histErr == nil {
		histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// Shutdown flushes and stops the trace provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.TraceProvider != nil {
		return p.TraceProvider.Shutdown(ctx)
	}
	return nil
}
