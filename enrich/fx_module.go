package enrich

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the configured Enricher implementation.
var FXModule = fx.Module("enrich",
	fx.Provide(
		NewConfig,
		NewEnricher,
	),
)

// NewEnricher builds the enricher selected by the configuration.
func NewEnricher(cfg Config) (Enricher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == ProviderGemini {
		return NewGeminiEnricher(context.Background(), cfg)
	}
	return NewStaticEnricher(), nil
}
