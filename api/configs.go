package api

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the HTTP server settings.
type Config struct {
	// Address is the listen address.
	Address string

	// ReadTimeout and WriteTimeout bound request handling. Agent search
	// calls out to the enricher per candidate, so the write timeout is
	// generous.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// SearchTopK is the default candidate count for agent search.
	SearchTopK int
}

// NewConfig reads the server configuration from environment variables.
//
// Variables:
//   - API_ADDRESS (default ":8000")
//   - API_READ_TIMEOUT_SECONDS (default 10)
//   - API_WRITE_TIMEOUT_SECONDS (default 120)
//   - API_SEARCH_TOP_K (default 10)
func NewConfig() Config {
	cfg := Config{
		Address:      os.Getenv("API_ADDRESS"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		SearchTopK:   10,
	}
	if cfg.Address == "" {
		cfg.Address = ":8000"
	}
	if v := os.Getenv("API_READ_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ReadTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("API_WRITE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WriteTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("API_SEARCH_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SearchTopK = n
		}
	}
	return cfg
}

// Validate checks the server configuration.
func (c Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("api: address must not be empty")
	}
	if c.SearchTopK < 1 {
		return fmt.Errorf("api: search top-k must be at least 1, got %d", c.SearchTopK)
	}
	return nil
}
