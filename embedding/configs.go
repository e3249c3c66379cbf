package embedding

import (
	"fmt"
	"os"
)

// Provider names accepted by EMBEDDING_PROVIDER.
const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
)

// DefaultModel is the fixed baseline model used when nothing newer is
// available from the tracking store.
const DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

// Config holds embedding provider configuration.
type Config struct {
	// Provider selects the encoder implementation ("local" or "openai").
	Provider string

	// Endpoint is the base URL of the OpenAI-compatible embedding service.
	// Only used by the openai provider.
	Endpoint string

	// APIKey authenticates against the remote service. "none" works for
	// unauthenticated local deployments.
	APIKey string
}

// NewConfig reads embedding configuration from environment variables.
//
// Variables:
//   - EMBEDDING_PROVIDER ("local" or "openai", default "local")
//   - EMBEDDING_ENDPOINT (openai provider only)
//   - EMBEDDING_API_KEY (default "none")
func NewConfig() Config {
	provider := os.Getenv("EMBEDDING_PROVIDER")
	if provider == "" {
		provider = ProviderLocal
	}

	apiKey := os.Getenv("EMBEDDING_API_KEY")
	if apiKey == "" {
		apiKey = "none"
	}

	return Config{
		Provider: provider,
		Endpoint: os.Getenv("EMBEDDING_ENDPOINT"),
		APIKey:   apiKey,
	}
}

// Validate ensures the selected provider has what it needs.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLocal:
		return nil
	case ProviderOpenAI:
		if c.Endpoint == "" {
			return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
		}
		return nil
	default:
		return fmt.Errorf("embedding: unknown provider %q", c.Provider)
	}
}
