// Package embedding provides text-to-vector encoders for profile matching.
//
// An Encoder turns a batch of texts into L2-normalized fixed-length vectors,
// one per input, preserving input order. Encoding is deterministic for a
// fixed model and text, which the model manager and the training pipeline
// both rely on.
//
// Two providers exist:
//
//   - local: a self-contained feature-hashing encoder, used as the fixed
//     baseline family. It needs no network and gives byte-stable output.
//   - openai: an OpenAI-compatible remote embedding endpoint (langchaingo),
//     selected via EMBEDDING_PROVIDER=openai. Remote output is
//     re-normalized locally so the unit-norm invariant always holds.
//
// The Registry resolves model names to encoders and rebuilds encoders from
// logged model descriptors:
//
//	reg, _ := embedding.NewRegistry(embedding.NewConfig())
//	enc, err := reg.Build("sentence-transformers/all-MiniLM-L6-v2")
//	vecs, err := enc.Encode(ctx, []string{"go developer in berlin"})
package embedding
