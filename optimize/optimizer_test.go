package optimize

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/pipeline"
	"github.com/talenthunt/talenthunt/tracking"
)

func testPipelineConfig(t *testing.T) pipeline.Config {
	t.Helper()
	dir := t.TempDir()

	users := "login,name,company,location,bio,followers,public_repos,public_gists\n" +
		"alice,Alice,Acme,Berlin,compiler hacker,10,3,1\n" +
		"bob,Bob,,,backend developer,5,2,0\n"
	repos := "owner_login,repo_name,description,language,stargazers_count\n" +
		"alice,c1,A toy compiler,Go,40\n" +
		"bob,api,REST service,Python,7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), []byte(users), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repos.csv"), []byte(repos), 0o644))

	return pipeline.Config{
		UsersPath:      filepath.Join(dir, "users.csv"),
		ReposPath:      filepath.Join(dir, "repos.csv"),
		GoldPath:       filepath.Join(dir, "gold_standard.csv"),
		ProfilesPath:   filepath.Join(dir, "profiles_enriched.csv"),
		ExperimentName: "search-exp",
	}
}

func testPipeline(t *testing.T, store tracking.Store) *pipeline.Pipeline {
	t.Helper()
	registry, err := embedding.NewRegistry(embedding.Config{Provider: embedding.ProviderLocal})
	require.NoError(t, err)
	return pipeline.NewPipeline(testPipelineConfig(t), store, registry, logger.NewNop())
}

func TestSamplerStaysInDomain(t *testing.T) {
	catalog := embedding.CatalogModels()
	smp := newSampler(42)

	for i := 0; i < 50; i++ {
		params := smp.sample()
		assert.Contains(t, catalog, params.ModelName)
		assert.Contains(t, batchSizes, params.BatchSize)
	}
}

func TestSamplerDeterministicForSeed(t *testing.T) {
	a := newSampler(7)
	b := newSampler(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.sample(), b.sample())
	}
}

func TestStudyRecordsRunningMaximum(t *testing.T) {
	study := newStudy("s")

	study.record(Trial{Number: 0, Params: pipeline.Params{BatchSize: 16}, Value: 0.4})
	study.record(Trial{Number: 1, Params: pipeline.Params{BatchSize: 64}, Value: 0.9})
	study.record(Trial{Number: 2, Params: pipeline.Params{BatchSize: 32}, Value: 0.1})

	assert.Len(t, study.Trials, 3)
	assert.Equal(t, 0.9, study.BestValue)
	assert.Equal(t, 64, study.BestParams.BatchSize)
}

func TestStudyAcceptsNegativeObjectives(t *testing.T) {
	study := newStudy("s")
	study.record(Trial{Value: -0.3})
	assert.Equal(t, -0.3, study.BestValue)
}

func TestObjectiveScorePriority(t *testing.T) {
	all := map[string]float64{"accuracy": 80, "mae": 0.2, "num_profiles": 5}
	assert.Equal(t, 80.0, objectiveScore(all))

	noAccuracy := map[string]float64{"mae": 0.2, "num_profiles": 5}
	assert.Equal(t, -0.2, objectiveScore(noAccuracy))

	unlabeled := map[string]float64{"num_profiles": 5}
	assert.Equal(t, 5.0, objectiveScore(unlabeled))
}

func TestOptimizerRunRecordsTrialsAndBest(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()

	cfg := Config{
		Trials:         3,
		Seed:           1,
		StudyName:      "model-search",
		ExperimentName: "search-exp",
	}
	optimizer, err := NewOptimizer(cfg, testPipeline(t, store), store, logger.NewNop())
	require.NoError(t, err)

	study, err := optimizer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, study.Trials, cfg.Trials)

	// Unlabeled data: every trial scores the profile count.
	assert.Equal(t, 2.0, study.BestValue)

	experiments, err := store.ListExperiments(ctx)
	require.NoError(t, err)
	require.Len(t, experiments, 1)

	runs, err := store.SearchRuns(ctx, experiments[0].ID, tracking.OrderStartTimeDesc, 0)
	require.NoError(t, err)

	var studyRunID string
	byName := make(map[string]tracking.Run, len(runs))
	for _, run := range runs {
		byName[run.Info.Name] = run
		if run.Info.Name == cfg.StudyName {
			studyRunID = run.Info.RunID
		}
	}
	require.NotEmpty(t, studyRunID)

	for i := 0; i < cfg.Trials; i++ {
		trial, ok := byName["trial-"+strconv.Itoa(i)]
		require.True(t, ok, "missing trial run %d", i)
		assert.Equal(t, tracking.StatusFinished, trial.Info.Status)
		assert.Equal(t, studyRunID, trial.Params["parent_run_id"])
		assert.Equal(t, strconv.Itoa(i), trial.Params["trial_number"])
		assert.Equal(t, 2.0, trial.Metrics["objective_score"])
	}

	best, ok := byName["search_best"]
	require.True(t, ok, "missing search_best run")
	assert.Equal(t, cfg.StudyName, best.Params["study"])
	assert.Equal(t, study.BestParams.ModelName, best.Params["best_model_name"])
	assert.Equal(t, strconv.Itoa(study.BestParams.BatchSize), best.Params["best_batch_size"])
	assert.Equal(t, study.BestValue, best.Metrics["best_value"])
}

func TestOptimizerFailingTrialAbortsSearch(t *testing.T) {
	ctx := context.Background()
	store := tracking.NewMemoryStore()

	registry, err := embedding.NewRegistry(embedding.Config{Provider: embedding.ProviderLocal})
	require.NoError(t, err)

	cfg := testPipelineConfig(t)
	cfg.UsersPath = filepath.Join(t.TempDir(), "missing.csv")
	broken := pipeline.NewPipeline(cfg, store, registry, logger.NewNop())

	optimizer, err := NewOptimizer(Config{
		Trials:         3,
		Seed:           1,
		StudyName:      "model-search",
		ExperimentName: "search-exp",
	}, broken, store, logger.NewNop())
	require.NoError(t, err)

	_, err = optimizer.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trial 0")
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Trials: 0, StudyName: "s"}.Validate())
	assert.Error(t, Config{Trials: 1}.Validate())
	assert.NoError(t, Config{Trials: 1, StudyName: "s"}.Validate())
}
