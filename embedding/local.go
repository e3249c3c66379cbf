package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// modelSpec fixes the output dimension of each supported model family.
type modelSpec struct {
	dimension int
}

// catalog lists the model names the local provider can build. Dimensions
// match the sentence-transformer families the names refer to.
var catalog = map[string]modelSpec{
	"sentence-transformers/all-MiniLM-L6-v2":        {dimension: 384},
	"sentence-transformers/all-mpnet-base-v2":       {dimension: 768},
	"sentence-transformers/paraphrase-MiniLM-L6-v2": {dimension: 384},
}

// CatalogModels returns the model names the local provider supports.
func CatalogModels() []string {
	return []string{
		"sentence-transformers/all-MiniLM-L6-v2",
		"sentence-transformers/all-mpnet-base-v2",
		"sentence-transformers/paraphrase-MiniLM-L6-v2",
	}
}

// localEncoder is a deterministic feature-hashing encoder. Tokens and token
// bigrams are hashed into a fixed-length vector, with the model name mixed
// into the hash so different models produce different spaces, and the
// result is L2-normalized.
type localEncoder struct {
	model     string
	dimension int
	seed      uint64
}

// NewLocalEncoder builds a deterministic encoder for a catalog model.
func NewLocalEncoder(model string) (Encoder, error) {
	spec, ok := catalog[model]
	if !ok {
		return nil, fmt.Errorf("embedding: unknown model %q", model)
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(model))

	return &localEncoder{
		model:     model,
		dimension: spec.dimension,
		seed:      h.Sum64(),
	}, nil
}

func (e *localEncoder) Name() string {
	return e.model
}

func (e *localEncoder) Dimension() int {
	return e.dimension
}

func (e *localEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.encodeOne(text)
	}
	return out, nil
}

func (e *localEncoder) encodeOne(text string) []float32 {
	vec := make([]float32, e.dimension)

	tokens := tokenize(text)
	for i, tok := range tokens {
		e.addFeature(vec, tok)
		if i+1 < len(tokens) {
			e.addFeature(vec, tok+" "+tokens[i+1])
		}
	}

	return Normalize(vec)
}

// addFeature hashes a token into a bucket with a +-1 sign, the standard
// feature-hashing construction.
func (e *localEncoder) addFeature(vec []float32, token string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	sum := h.Sum64() ^ e.seed

	bucket := sum % uint64(len(vec))
	if sum&(1<<63) != 0 {
		vec[bucket]--
	} else {
		vec[bucket]++
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
