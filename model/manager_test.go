package model

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/tracking"
)

func testConfig() Config {
	return Config{ArtifactName: DefaultArtifactName, EncodeWorkers: 2}
}

func testRegistry(t *testing.T) *embedding.Registry {
	t.Helper()
	registry, err := embedding.NewRegistry(embedding.Config{Provider: embedding.ProviderLocal})
	require.NoError(t, err)
	return registry
}

func newTestManager(t *testing.T, store tracking.Reader) *Manager {
	t.Helper()
	m, err := NewManager(testConfig(), store, testRegistry(t), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// seedModelRun finishes a run carrying a model descriptor artifact and
// returns its run id.
func seedModelRun(t *testing.T, store tracking.Store, experiment, modelName string) string {
	t.Helper()
	ctx := context.Background()

	scope, err := store.StartRun(ctx, experiment, "training")
	require.NoError(t, err)

	desc, err := json.Marshal(embedding.Descriptor{
		Provider: embedding.ProviderLocal,
		Model:    modelName,
	})
	require.NoError(t, err)
	require.NoError(t, scope.LogArtifact(ctx, DefaultArtifactName, desc))
	require.NoError(t, scope.Close(ctx, nil))

	return scope.RunID()
}

// countingStore counts artifact loads to observe cache behavior.
type countingStore struct {
	tracking.Store
	loads int
}

func (c *countingStore) LoadArtifact(ctx context.Context, uri string) ([]byte, error) {
	c.loads++
	return c.Store.LoadArtifact(ctx, uri)
}

// failingReader fails every read, simulating an unreachable store.
type failingReader struct{}

func (failingReader) ListExperiments(ctx context.Context) ([]tracking.Experiment, error) {
	return nil, assert.AnError
}

func (failingReader) SearchRuns(ctx context.Context, experimentID string, order tracking.RunOrder, limit int) ([]tracking.Run, error) {
	return nil, assert.AnError
}

func (failingReader) ListArtifacts(ctx context.Context, runID string) ([]tracking.Artifact, error) {
	return nil, assert.AnError
}

func (failingReader) LoadArtifact(ctx context.Context, uri string) ([]byte, error) {
	return nil, assert.AnError
}

func (failingReader) Endpoint() string { return "broken://" }

func TestResolverPicksFirstExperimentWithArtifact(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()

	// First experiment's latest run has no artifact.
	empty, err := store.StartRun(ctx, "exp-without-model", "training")
	require.NoError(t, err)
	require.NoError(t, empty.Close(ctx, nil))

	runID := seedModelRun(t, store, "exp-with-model", embedding.DefaultModel)

	resolver := NewResolver(store)
	resolved, err := resolver.ResolveLatest(ctx, DefaultArtifactName)
	require.NoError(t, err)
	assert.Equal(t, runID, resolved)
}

func TestResolverOnlyInspectsLatestRun(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()

	// Older run in the experiment carries the artifact, the latest does not.
	seedModelRun(t, store, "exp", embedding.DefaultModel)
	latest, err := store.StartRun(ctx, "exp", "training")
	require.NoError(t, err)
	require.NoError(t, latest.Close(ctx, nil))

	resolver := NewResolver(store)
	_, err = resolver.ResolveLatest(ctx, DefaultArtifactName)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestLoadLatestMakesVersionCurrent(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	runID := seedModelRun(t, store, "exp", embedding.DefaultModel)

	manager := newTestManager(t, store)
	enc := manager.LoadLatest(ctx)
	require.NotNil(t, enc)
	assert.Equal(t, embedding.DefaultModel, enc.Name())

	info := manager.ModelInfo()
	assert.Equal(t, runID, info.ModelVersion)
	assert.Contains(t, info.CachedVersions, runID)
	assert.Equal(t, "memory://", info.TrackingEndpoint)
}

func TestLoadLatestFallsBackToBaseline(t *testing.T) {
	manager := newTestManager(t, tracking.NewMemoryStore())

	enc := manager.LoadLatest(context.Background())
	require.NotNil(t, enc)
	assert.Equal(t, embedding.DefaultModel, enc.Name())

	info := manager.ModelInfo()
	assert.Equal(t, VersionDefault, info.ModelVersion)
	assert.Empty(t, info.CachedVersions)
}

func TestLoadLatestNeverFailsOnBrokenStore(t *testing.T) {
	manager := newTestManager(t, failingReader{})

	enc := manager.LoadLatest(context.Background())
	require.NotNil(t, enc)
	assert.Equal(t, embedding.DefaultModel, enc.Name())
}

func TestLoadVersionServesFromCache(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	runID := seedModelRun(t, store, "exp", embedding.DefaultModel)

	counting := &countingStore{Store: store}
	manager := newTestManager(t, counting)

	first := manager.LoadVersion(ctx, runID)
	require.NotNil(t, first)
	assert.Equal(t, 1, counting.loads)

	second := manager.LoadVersion(ctx, runID)
	assert.Same(t, first, second)
	assert.Equal(t, 1, counting.loads, "cached load must not hit the store")
}

func TestLoadVersionFailureLeavesCurrentUntouched(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	runID := seedModelRun(t, store, "exp", embedding.DefaultModel)

	manager := newTestManager(t, store)
	manager.LoadLatest(ctx)

	enc := manager.LoadVersion(ctx, "no-such-version")
	require.NotNil(t, enc)

	info := manager.ModelInfo()
	assert.Equal(t, runID, info.ModelVersion)
	assert.NotContains(t, info.CachedVersions, "no-such-version")
}

func TestLoadVersionDoesNotChangeCurrent(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	pinned := seedModelRun(t, store, "exp-a", "sentence-transformers/all-mpnet-base-v2")

	manager := newTestManager(t, store)

	enc := manager.LoadVersion(ctx, pinned)
	require.NotNil(t, enc)
	assert.Equal(t, "sentence-transformers/all-mpnet-base-v2", enc.Name())

	// Pinned loads cache the version but do not promote it.
	info := manager.ModelInfo()
	assert.Equal(t, VersionDefault, info.ModelVersion)
	assert.Contains(t, info.CachedVersions, pinned)
}

func TestLoadVersionStrictSurfacesMisses(t *testing.T) {
	manager := newTestManager(t, tracking.NewMemoryStore())

	_, err := manager.LoadVersionStrict(context.Background(), "no-such-version")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestCheckTracking(t *testing.T) {
	ctx := context.Background()

	healthy := newTestManager(t, tracking.NewMemoryStore())
	assert.NoError(t, healthy.CheckTracking(ctx))

	broken := newTestManager(t, failingReader{})
	assert.Error(t, broken.CheckTracking(ctx))
}

func TestPredictEmbeddingUnitNorm(t *testing.T) {
	manager := newTestManager(t, tracking.NewMemoryStore())

	vec, used, err := manager.PredictEmbedding(context.Background(), "golang engineer", "")
	require.NoError(t, err)
	assert.Equal(t, VersionDefault, used)
	assert.InDelta(t, 1.0, embedding.Norm(vec), 1e-5)
}

func TestPredictSimilarity(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, tracking.NewMemoryStore())

	self, _, err := manager.PredictSimilarity(ctx, "rust developer", "rust developer", "")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, self, 1e-5)

	ab, _, err := manager.PredictSimilarity(ctx, "rust developer", "dba", "")
	require.NoError(t, err)
	ba, _, err := manager.PredictSimilarity(ctx, "dba", "rust developer", "")
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-9)
}
