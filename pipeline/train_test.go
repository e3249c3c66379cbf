package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/model"
	"github.com/talenthunt/talenthunt/tracking"
)

func localRegistry(t *testing.T) *embedding.Registry {
	t.Helper()
	registry, err := embedding.NewRegistry(embedding.Config{Provider: embedding.ProviderLocal})
	require.NoError(t, err)
	return registry
}

func TestTrainProducesOneVectorPerProfile(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	scope, err := store.StartRun(ctx, "exp", "training")
	require.NoError(t, err)

	profiles := make([]dataset.Profile, 70)
	for i := range profiles {
		profiles[i] = dataset.Profile{
			Login:       fmt.Sprintf("user-%d", i),
			ProfileText: fmt.Sprintf("developer number %d", i),
		}
	}

	enc, vectors, err := Train(ctx, scope, localRegistry(t), profiles, Params{
		ModelName: embedding.DefaultModel,
		BatchSize: 16,
	})
	require.NoError(t, err)
	require.Len(t, vectors, len(profiles))

	// Batched encoding must preserve row order.
	direct, err := enc.Encode(ctx, []string{profiles[37].ProfileText})
	require.NoError(t, err)
	assert.Equal(t, direct[0], vectors[37])

	for _, vec := range vectors {
		assert.Len(t, vec, enc.Dimension())
	}
}

func TestTrainLogsParamsAndArtifact(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	scope, err := store.StartRun(ctx, "exp", "training")
	require.NoError(t, err)

	profiles := []dataset.Profile{{Login: "alice", ProfileText: "go developer"}}
	_, _, err = Train(ctx, scope, localRegistry(t), profiles, Params{
		ModelName: embedding.DefaultModel,
		BatchSize: 32,
	})
	require.NoError(t, err)
	require.NoError(t, scope.Close(ctx, nil))

	experiments, _ := store.ListExperiments(ctx)
	runs, err := store.SearchRuns(ctx, experiments[0].ID, tracking.OrderStartTimeDesc, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, embedding.DefaultModel, run.Params["model_name"])
	assert.Equal(t, "32", run.Params["batch_size"])
	assert.Equal(t, "1", run.Params["num_profiles"])

	require.Len(t, run.Artifacts, 1)
	assert.Equal(t, model.DefaultArtifactName, run.Artifacts[0].Name)

	// The logged descriptor must rebuild the same encoder.
	data, err := store.LoadArtifact(ctx, tracking.ArtifactURI(scope.RunID(), model.DefaultArtifactName))
	require.NoError(t, err)
	rebuilt, err := localRegistry(t).FromDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, embedding.DefaultModel, rebuilt.Name())
}

func TestTrainUnknownModelFails(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	scope, err := store.StartRun(ctx, "exp", "training")
	require.NoError(t, err)

	_, _, err = Train(ctx, scope, localRegistry(t), nil, Params{ModelName: "bogus", BatchSize: 32})
	assert.Error(t, err)
}
