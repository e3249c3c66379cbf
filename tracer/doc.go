// Package tracer configures OpenTelemetry tracing for the service.
//
// It installs a global tracer provider with service resource attributes
// and, when export is enabled, an OTLP/HTTP batcher. Packages create spans
// through the global otel API; nothing else needs a handle on the
// provider.
package tracer
