package optimize

import (
	"math/rand"

	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/pipeline"
)

// batchSizes is the fixed batch-size domain.
var batchSizes = []int{16, 32, 64}

// sampler draws trial configurations from the fixed categorical domains.
type sampler struct {
	rng    *rand.Rand
	models []string
}

func newSampler(seed int64) *sampler {
	return &sampler{
		rng:    rand.New(rand.NewSource(seed)),
		models: embedding.CatalogModels(),
	}
}

func (s *sampler) sample() pipeline.Params {
	return pipeline.Params{
		ModelName: s.models[s.rng.Intn(len(s.models))],
		BatchSize: batchSizes[s.rng.Intn(len(batchSizes))],
	}
}
