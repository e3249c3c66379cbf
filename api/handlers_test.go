package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/enrich"
	"github.com/talenthunt/talenthunt/index"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/metrics"
	"github.com/talenthunt/talenthunt/model"
	"github.com/talenthunt/talenthunt/pipeline"
	"github.com/talenthunt/talenthunt/tracking"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return testServerWith(t, tracking.NewMemoryStore(), enrich.NewStaticEnricher())
}

func testServerWith(t *testing.T, store tracking.Reader, enricher enrich.Enricher) *Server {
	t.Helper()

	registry, err := embedding.NewRegistry(embedding.Config{Provider: embedding.ProviderLocal})
	require.NoError(t, err)

	manager, err := model.NewManager(
		model.Config{ArtifactName: model.DefaultArtifactName, EncodeWorkers: 2},
		store,
		registry,
		logger.NewNop(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })
	manager.LoadLatest(context.Background())

	cfg := Config{
		Address:      ":0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		SearchTopK:   10,
	}
	pipeCfg := pipeline.Config{ProfilesPath: filepath.Join(t.TempDir(), "profiles.csv")}
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})

	server, err := NewServer(cfg, manager, pipeCfg, nil, enricher, m, logger.NewNop())
	require.NoError(t, err)
	return server
}

// brokenReader simulates an unreachable tracking store.
type brokenReader struct{}

func (brokenReader) ListExperiments(ctx context.Context) ([]tracking.Experiment, error) {
	return nil, assert.AnError
}

func (brokenReader) SearchRuns(ctx context.Context, experimentID string, order tracking.RunOrder, limit int) ([]tracking.Run, error) {
	return nil, assert.AnError
}

func (brokenReader) ListArtifacts(ctx context.Context, runID string) ([]tracking.Artifact, error) {
	return nil, assert.AnError
}

func (brokenReader) LoadArtifact(ctx context.Context, uri string) ([]byte, error) {
	return nil, assert.AnError
}

func (brokenReader) Endpoint() string { return "broken://" }

// failingEnricher fails every enrichment call.
type failingEnricher struct{}

func (failingEnricher) ScoreCandidate(ctx context.Context, query, profileText string) (enrich.Score, error) {
	return enrich.Score{}, assert.AnError
}

func (failingEnricher) ExtractSkills(ctx context.Context, profileText string) ([]string, error) {
	return nil, assert.AnError
}

func (failingEnricher) Summarize(ctx context.Context, profileText string) (string, error) {
	return "", assert.AnError
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	server.HTTP.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHandleBanner(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	banner := decode[bannerResponse](t, rec)
	assert.Equal(t, "talenthunt", banner.Service)
	assert.Contains(t, banner.Docs, "POST /predict")
}

func TestHandleHealth(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[healthResponse](t, rec)
	assert.Equal(t, "healthy", health.API)
	assert.Equal(t, "healthy", health.Tracking)
	assert.Equal(t, "loaded:"+model.VersionDefault, health.Model)
}

func TestHandleHealthReportsUnreachableTracking(t *testing.T) {
	server := testServerWith(t, brokenReader{}, enrich.NewStaticEnricher())

	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[healthResponse](t, rec)
	assert.Equal(t, "healthy", health.API)
	assert.Equal(t, "unhealthy", health.Tracking)
}

func TestHandlePredict(t *testing.T) {
	server := testServer(t)

	rec := doJSON(t, server, http.MethodPost, "/predict", predictRequest{Text: "golang engineer"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[predictResponse](t, rec)
	assert.Equal(t, "golang engineer", resp.Text)
	assert.Len(t, resp.Embedding, 384)
	assert.Equal(t, 384, resp.EmbeddingDim)
	assert.Equal(t, model.VersionDefault, resp.ModelVersion)
	assert.Equal(t, "success", resp.Status)
}

func TestHandlePredictEmptyText(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/predict", predictRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text must not be empty", decode[errorResponse](t, rec).Detail)
}

func TestHandlePredictInvalidBody(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	server.HTTP.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSimilarity(t *testing.T) {
	server := testServer(t)

	rec := doJSON(t, server, http.MethodPost, "/predict/similarity", similarityRequest{
		Text1: "rust developer",
		Text2: "rust developer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[similarityResponse](t, rec)
	assert.Equal(t, "rust developer", resp.Text1)
	assert.Equal(t, "rust developer", resp.Text2)
	assert.InDelta(t, 1.0, resp.Similarity, 1e-5)
	assert.Equal(t, "success", resp.Status)
}

func TestHandleSimilarityMissingText(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/predict/similarity", similarityRequest{Text1: "a"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleModelInfo(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/models/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	info := decode[model.Info](t, rec)
	assert.Equal(t, model.VersionDefault, info.ModelVersion)
	assert.Equal(t, "memory://", info.TrackingEndpoint)
}

func TestHandleLoadModelUnknownVersion(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/models/load/no-such-version", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Detail, "no-such-version")
}

func TestHandleAgentSearchWithoutIndex(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/agent_search", agentSearchRequest{Query: "golang"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "search index is disabled", decode[errorResponse](t, rec).Detail)
}

func TestScoreCandidatesPersistsAgentScores(t *testing.T) {
	ctx := context.Background()
	server := testServer(t)

	require.NoError(t, dataset.WriteProfiles(server.profiles, []dataset.Profile{
		{Login: "alice", Name: "Alice", ProfileText: "golang backend engineer . Languages: Go, Python", AgentScore: math.NaN()},
		{Login: "bob", Name: "Bob", ProfileText: "frontend designer", AgentScore: math.NaN()},
	}))

	hits := []index.Hit{
		{Login: "bob", Name: "Bob", Score: 0.9},
		{Login: "alice", Name: "Alice", Score: 0.8},
		{Login: "ghost", Name: "Ghost", Score: 0.7},
	}

	candidates, err := server.scoreCandidates(ctx, "golang engineer", hits)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	// Candidates come back ordered by agent score, not by similarity.
	assert.Equal(t, "alice", candidates[0].Login)
	assert.Equal(t, 1.0, candidates[0].AgentScore)
	assert.Equal(t, []string{"Go", "Python"}, candidates[0].Skills)
	assert.Equal(t, "golang backend engineer", candidates[0].Summary)

	// Scores for known logins are written back, scored profiles first.
	profiles, err := dataset.ReadProfiles(server.profiles)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].Login)
	assert.Equal(t, 1.0, profiles[0].AgentScore)
	assert.True(t, profiles[1].HasAgentScore())
}

func TestScoreCandidatesDegradesPerCandidateOnFailure(t *testing.T) {
	ctx := context.Background()
	server := testServerWith(t, tracking.NewMemoryStore(), failingEnricher{})

	require.NoError(t, dataset.WriteProfiles(server.profiles, []dataset.Profile{
		{Login: "alice", Name: "Alice", ProfileText: "golang engineer", AgentScore: math.NaN()},
	}))

	hits := []index.Hit{{Login: "alice", Name: "Alice", Score: 0.8}}

	// An AI failure must not fail the search; the candidate keeps its
	// similarity score.
	candidates, err := server.scoreCandidates(ctx, "golang", hits)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 0.8, candidates[0].AgentScore, 1e-6)
	assert.Empty(t, candidates[0].Skills)
	assert.Equal(t, "analysis unavailable", candidates[0].Summary)

	profiles, err := dataset.ReadProfiles(server.profiles)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.InDelta(t, 0.8, profiles[0].AgentScore, 1e-6)
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	_, err := NewServer(Config{}, nil, pipeline.Config{}, nil, nil, nil, logger.NewNop())
	assert.Error(t, err)
}
