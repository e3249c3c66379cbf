package embedding

import "context"

// Encoder converts texts into L2-normalized embedding vectors.
//
// Encode returns exactly one vector per input text, in input order.
// Implementations must be deterministic for a fixed model and text and
// safe for concurrent use.
type Encoder interface {
	// Name is the model name this encoder was built for.
	Name() string

	// Dimension is the length of every vector Encode returns.
	Dimension() int

	// Encode embeds a batch of texts. Every returned vector has unit L2
	// norm, except for texts that produce no features (empty after
	// tokenization), which encode to the zero vector.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Descriptor is the serialized form of a trained model artifact. It carries
// everything needed to rebuild an equivalent encoder at serving time.
type Descriptor struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
}
