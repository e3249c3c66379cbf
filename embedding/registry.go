package embedding

import (
	"encoding/json"
	"fmt"
)

// Registry resolves model names to encoders using the configured provider.
type Registry struct {
	cfg Config
}

// NewRegistry validates the config and returns a Registry.
func NewRegistry(cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Registry{cfg: cfg}, nil
}

// Build returns an encoder for the named model using the configured
// provider.
func (r *Registry) Build(model string) (Encoder, error) {
	switch r.cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIEncoder(r.cfg, model)
	default:
		return NewLocalEncoder(model)
	}
}

// Baseline builds the fixed default encoder. The baseline is always the
// local provider so a fallback never depends on a remote service.
func (r *Registry) Baseline() (Encoder, error) {
	return NewLocalEncoder(DefaultModel)
}

// Describe produces the serializable descriptor for an encoder, suitable
// for logging as a model artifact.
func Describe(enc Encoder, provider string) Descriptor {
	return Descriptor{
		Provider:  provider,
		Model:     enc.Name(),
		Dimension: enc.Dimension(),
	}
}

// Provider returns the configured provider name.
func (r *Registry) Provider() string {
	return r.cfg.Provider
}

// FromDescriptor rebuilds an encoder from a logged model descriptor.
func (r *Registry) FromDescriptor(data []byte) (Encoder, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("embedding: malformed model descriptor: %w", err)
	}

	var (
		enc Encoder
		err error
	)
	switch d.Provider {
	case ProviderOpenAI:
		enc, err = NewOpenAIEncoder(r.cfg, d.Model)
	default:
		enc, err = NewLocalEncoder(d.Model)
	}
	if err != nil {
		return nil, err
	}

	if d.Dimension != 0 && d.Dimension != enc.Dimension() {
		return nil, fmt.Errorf("embedding: descriptor dimension %d does not match model %q (%d)",
			d.Dimension, d.Model, enc.Dimension())
	}
	return enc, nil
}
