package embedding

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// openaiEncoder talks to an OpenAI-compatible /v1/embeddings endpoint
// through langchaingo. Output is re-normalized locally so the unit-norm
// invariant does not depend on the remote service.
type openaiEncoder struct {
	model     string
	dimension int
	embedder  embeddings.Embedder
}

// NewOpenAIEncoder builds a remote encoder for a catalog model. The catalog
// still fixes the expected dimension so descriptors round-trip.
func NewOpenAIEncoder(cfg Config, model string) (Encoder, error) {
	spec, ok := catalog[model]
	if !ok {
		return nil, fmt.Errorf("embedding: unknown model %q", model)
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.Endpoint),
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create openai client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create embedder: %w", err)
	}

	return &openaiEncoder{
		model:     model,
		dimension: spec.dimension,
		embedder:  embedder,
	}, nil
}

func (e *openaiEncoder) Name() string {
	return e.model
}

func (e *openaiEncoder) Dimension() int {
	return e.dimension
}

func (e *openaiEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding: remote encode failed: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d texts", len(vecs), len(texts))
	}
	for i := range vecs {
		Normalize(vecs[i])
	}
	return vecs, nil
}
