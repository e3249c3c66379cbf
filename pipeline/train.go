package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/model"
	"github.com/talenthunt/talenthunt/tracking"
)

// encodeConcurrency bounds how many batches encode in parallel. Results are
// written into indexed slots, so concurrency never reorders rows.
const encodeConcurrency = 4

// Train builds the requested encoder, embeds every profile text in
// fixed-size batches, and logs the model parameters and descriptor artifact
// to the open tracking scope.
//
// The returned matrix has exactly one row per profile, in profile order:
// embedding row i always corresponds to profile row i.
func Train(ctx context.Context, scope *tracking.Scope, registry *embedding.Registry, profiles []dataset.Profile, params Params) (embedding.Encoder, [][]float32, error) {
	enc, err := registry.Build(params.ModelName)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: build model %q: %w", params.ModelName, err)
	}

	if err := scope.LogParams(map[string]string{
		"model_name":   params.ModelName,
		"batch_size":   strconv.Itoa(params.BatchSize),
		"num_profiles": strconv.Itoa(len(profiles)),
	}); err != nil {
		return nil, nil, err
	}

	texts := make([]string, len(profiles))
	for i, p := range profiles {
		texts[i] = p.ProfileText
	}

	vectors, err := encodeBatched(ctx, enc, texts, params.BatchSize)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: encode profiles: %w", err)
	}

	descriptor, err := json.Marshal(embedding.Describe(enc, registry.Provider()))
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: marshal model descriptor: %w", err)
	}
	if err := scope.LogArtifact(ctx, model.DefaultArtifactName, descriptor); err != nil {
		return nil, nil, fmt.Errorf("pipeline: log model artifact: %w", err)
	}

	return enc, vectors, nil
}

// encodeBatched splits texts into batches of batchSize and encodes them
// with bounded parallelism, preserving input order.
func encodeBatched(ctx context.Context, enc embedding.Encoder, texts []string, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = 32
	}

	vectors := make([][]float32, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(encodeConcurrency)

	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		g.Go(func() error {
			batch, err := enc.Encode(ctx, texts[start:end])
			if err != nil {
				return err
			}
			if len(batch) != end-start {
				return fmt.Errorf("batch of %d texts produced %d vectors", end-start, len(batch))
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
