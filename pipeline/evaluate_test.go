package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/tracking"
)

func writeGold(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "gold_standard.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func openScope(t *testing.T, store tracking.Store) *tracking.Scope {
	t.Helper()
	scope, err := store.StartRun(context.Background(), "exp", "training")
	require.NoError(t, err)
	return scope
}

func TestEvaluateMAEAndAccuracy(t *testing.T) {
	dir := t.TempDir()
	goldPath := writeGold(t, dir, "login,human_relevance\nalice,1.0\nbob,2.0\n")

	profiles := []dataset.Profile{
		{Login: "alice", ProfileText: "a", AgentScore: 1.1},
		{Login: "bob", ProfileText: "b", AgentScore: 2.3},
	}
	vectors := [][]float32{make([]float32, 4), make([]float32, 4)}

	store := tracking.NewMemoryStore()
	scope := openScope(t, store)

	metrics, err := Evaluate(context.Background(), scope, Config{GoldPath: goldPath}, profiles, vectors)
	require.NoError(t, err)

	// Errors 0.1 and 0.3: one inside the 0.15 tolerance, one outside.
	assert.InDelta(t, 0.2, metrics["mae"], 1e-9)
	assert.InDelta(t, 50.0, metrics["accuracy"], 1e-9)
	assert.Equal(t, 2.0, metrics["num_profiles"])
	assert.Equal(t, 4.0, metrics["embedding_dim"])
	assert.Equal(t, 1.0, metrics["avg_profile_length"])
}

func TestEvaluateLegacyTruthColumn(t *testing.T) {
	dir := t.TempDir()
	goldPath := writeGold(t, dir, "login,note de pertinence (humain)\nalice,0.5\n")

	profiles := []dataset.Profile{{Login: "alice", ProfileText: "a", AgentScore: 0.5}}

	scope := openScope(t, tracking.NewMemoryStore())
	metrics, err := Evaluate(context.Background(), scope, Config{GoldPath: goldPath}, profiles, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, metrics["mae"])
	assert.Equal(t, 100.0, metrics["accuracy"])
}

func TestEvaluateMissingGoldIsTolerated(t *testing.T) {
	profiles := []dataset.Profile{{Login: "alice", ProfileText: "abcd", AgentScore: math.NaN()}}
	vectors := [][]float32{make([]float32, 8)}

	scope := openScope(t, tracking.NewMemoryStore())
	metrics, err := Evaluate(context.Background(), scope, Config{GoldPath: "/nonexistent/gold.csv"}, profiles, vectors)
	require.NoError(t, err)

	assert.NotContains(t, metrics, "mae")
	assert.NotContains(t, metrics, "accuracy")
	assert.Equal(t, 1.0, metrics["num_profiles"])
	assert.Equal(t, 8.0, metrics["embedding_dim"])
	assert.Equal(t, 4.0, metrics["avg_profile_length"])
}

func TestEvaluateDropsRowsWithoutScores(t *testing.T) {
	dir := t.TempDir()
	goldPath := writeGold(t, dir, "login,human_relevance\nalice,1.0\nbob,\ncarol,0.4\n")

	profiles := []dataset.Profile{
		{Login: "alice", ProfileText: "a", AgentScore: math.NaN()},
		{Login: "bob", ProfileText: "b", AgentScore: 0.7},
		{Login: "carol", ProfileText: "c", AgentScore: 0.4},
	}

	scope := openScope(t, tracking.NewMemoryStore())
	metrics, err := Evaluate(context.Background(), scope, Config{GoldPath: goldPath}, profiles, nil)
	require.NoError(t, err)

	// Only carol joins: alice has no agent score, bob has no truth value.
	assert.Equal(t, 0.0, metrics["mae"])
	assert.Equal(t, 100.0, metrics["accuracy"])
}

func TestEvaluateLogsMetricsToScope(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()
	scope := openScope(t, store)

	profiles := []dataset.Profile{{Login: "alice", ProfileText: "ab", AgentScore: math.NaN()}}
	_, err := Evaluate(ctx, scope, Config{GoldPath: "/nonexistent/gold.csv"}, profiles, nil)
	require.NoError(t, err)
	require.NoError(t, scope.Close(ctx, nil))

	experiments, _ := store.ListExperiments(ctx)
	runs, err := store.SearchRuns(ctx, experiments[0].ID, tracking.OrderStartTimeDesc, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1.0, runs[0].Metrics["num_profiles"])
	assert.Equal(t, 2.0, runs[0].Metrics["avg_profile_length"])
}
