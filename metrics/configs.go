package metrics

import "os"

// Config holds metrics server configuration.
type Config struct {
	// Address is the listen address of the /metrics endpoint.
	Address string

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string

	// EnableDefaultCollectors registers the Go and process collectors.
	EnableDefaultCollectors bool
}

// NewConfig reads metrics configuration from environment variables.
//
// Variables:
//   - METRICS_ADDRESS (default ":9090")
//   - SERVICE_NAME (default "talenthunt")
//   - METRICS_DEFAULT_COLLECTORS ("false" disables Go/process collectors)
func NewConfig() Config {
	address := os.Getenv("METRICS_ADDRESS")
	if address == "" {
		address = ":9090"
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "talenthunt"
	}

	return Config{
		Address:                 address,
		ServiceName:             service,
		EnableDefaultCollectors: os.Getenv("METRICS_DEFAULT_COLLECTORS") != "false",
	}
}
