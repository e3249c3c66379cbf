package enrich

import (
	"fmt"
	"os"
)

// Provider selects the enricher implementation.
type Provider string

const (
	ProviderStatic Provider = "static"
	ProviderGemini Provider = "gemini"
)

// Config holds the enrichment settings.
type Config struct {
	Provider Provider

	// APIKey authenticates against the Gemini API. Required for the gemini
	// provider.
	APIKey string

	// Model is the Gemini model name.
	Model string
}

// NewConfig reads the enrichment configuration from environment variables.
//
// Variables:
//   - ENRICH_PROVIDER (default "static")
//   - GEMINI_API_KEY (required for the gemini provider)
//   - GEMINI_MODEL (default "gemini-2.5-flash")
func NewConfig() Config {
	cfg := Config{
		Provider: Provider(os.Getenv("ENRICH_PROVIDER")),
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Model:    os.Getenv("GEMINI_MODEL"),
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderStatic
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	return cfg
}

// Validate checks the enrichment configuration.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderStatic:
		return nil
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("enrich: GEMINI_API_KEY is required for the gemini provider")
		}
		return nil
	default:
		return fmt.Errorf("enrich: unknown provider %q", c.Provider)
	}
}
