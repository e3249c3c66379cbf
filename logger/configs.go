package logger

import "os"

// Level controls the minimum severity emitted by the logger.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warning", "error").
	Level Level

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string
}

// NewConfig reads logger configuration from environment variables.
//
// Variables:
//   - LOG_LEVEL (default "info")
//   - SERVICE_NAME (default "talenthunt")
func NewConfig() Config {
	level := Level(os.Getenv("LOG_LEVEL"))
	switch level {
	case Debug, Info, Warning, Error:
	default:
		level = Info
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "talenthunt"
	}

	return Config{
		Level:       level,
		ServiceName: service,
	}
}
