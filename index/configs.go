package index

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the Qdrant connection settings and collection naming.
type Config struct {
	// Enabled toggles the index. When false, NewIndex returns nil and the
	// application runs without vector search.
	Enabled bool

	// Host is the Qdrant hostname, without scheme.
	Host string

	// Port is the Qdrant gRPC port.
	Port int

	// APIKey authenticates against secured deployments. Optional.
	APIKey string

	// Collection is the profile collection name.
	Collection string
}

// NewConfig reads the index configuration from environment variables.
//
// Variables:
//   - QDRANT_ENABLED (default "false")
//   - QDRANT_HOST (default "localhost")
//   - QDRANT_PORT (default 6334)
//   - QDRANT_API_KEY (optional)
//   - QDRANT_COLLECTION (default "profiles")
func NewConfig() Config {
	cfg := Config{
		Enabled:    os.Getenv("QDRANT_ENABLED") == "true",
		Host:       os.Getenv("QDRANT_HOST"),
		Port:       6334,
		APIKey:     os.Getenv("QDRANT_API_KEY"),
		Collection: os.Getenv("QDRANT_COLLECTION"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Collection == "" {
		cfg.Collection = "profiles"
	}
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	return cfg
}

// Validate checks the index configuration.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("index: host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("index: invalid port %d", c.Port)
	}
	if c.Collection == "" {
		return fmt.Errorf("index: collection must not be empty")
	}
	return nil
}
