package tracer

import "os"

// Config holds the tracing settings.
type Config struct {
	// ServiceName tags every exported span.
	ServiceName string

	// AppEnv is the deployment environment resource attribute.
	AppEnv string

	// EnableExport turns on the OTLP/HTTP exporter. The exporter endpoint
	// comes from the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool
}

// NewConfig reads the tracing configuration from environment variables.
//
// Variables:
//   - SERVICE_NAME (default "talenthunt")
//   - APP_ENV (default "development")
//   - TRACING_ENABLE_EXPORT (default "false")
func NewConfig() Config {
	cfg := Config{
		ServiceName:  os.Getenv("SERVICE_NAME"),
		AppEnv:       os.Getenv("APP_ENV"),
		EnableExport: os.Getenv("TRACING_ENABLE_EXPORT") == "true",
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "talenthunt"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	return cfg
}
