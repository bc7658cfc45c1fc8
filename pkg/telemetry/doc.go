// Package telemetry wires OpenTelemetry tracing and metrics for the
// storefront service.
//
// Init is environment-driven: with OTEL_EXPORTER_OTLP_ENDPOINT set it
// exports batched spans over OTLP/gRPC, with OTEL_TRACES_STDOUT=true it
// pretty-prints spans to stdout, and with neither it installs a provider
// that records nothing. OTEL_SDK_DISABLED=true skips setup entirely.
//
// The package also carries the correlation-id plumbing shared by the
// HTTP layer and the loggers.
package telemetry
