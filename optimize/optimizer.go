package optimize

import (
	"context"
	"fmt"
	"strconv"

	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/pipeline"
	"github.com/talenthunt/talenthunt/tracking"
)

// Optimizer drives sequential trials of the training pipeline.
type Optimizer struct {
	cfg   Config
	pipe  *pipeline.Pipeline
	store tracking.Store
	log   *logger.Logger
}

// NewOptimizer builds the search loop over an existing pipeline and store.
func NewOptimizer(cfg Config, pipe *pipeline.Pipeline, store tracking.Store, log *logger.Logger) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{
		cfg:   cfg,
		pipe:  pipe,
		store: store,
		log:   log,
	}, nil
}

// Run executes the configured number of trials and returns the completed
// study. Each trial is a full pipeline run under a nested tracking scope; a
// failing trial aborts the search. After the last trial, the best parameters
// and value are logged under a separate top-level scope.
func (o *Optimizer) Run(ctx context.Context) (*Study, error) {
	study := newStudy(o.cfg.StudyName)
	smp := newSampler(o.cfg.Seed)

	studyScope, err := o.store.StartRun(ctx, o.cfg.ExperimentName, o.cfg.StudyName)
	if err != nil {
		return nil, err
	}

	runErr := o.runTrials(ctx, studyScope, smp, study)
	if closeErr := studyScope.Close(ctx, runErr); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return nil, runErr
	}

	if err := o.logBest(ctx, study); err != nil {
		return nil, err
	}

	o.log.Info("hyperparameter search finished", nil, map[string]interface{}{
		"study":      study.Name,
		"trials":     len(study.Trials),
		"best_value": study.BestValue,
		"best":       fmt.Sprintf("%s/batch=%d", study.BestParams.ModelName, study.BestParams.BatchSize),
	})
	return study, nil
}

func (o *Optimizer) runTrials(ctx context.Context, studyScope *tracking.Scope, smp *sampler, study *Study) error {
	for i := 0; i < o.cfg.Trials; i++ {
		trial, err := o.runTrial(ctx, studyScope, i, smp.sample())
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		study.record(trial)

		o.log.Info("trial finished", nil, map[string]interface{}{
			"trial":      trial.Number,
			"model_name": trial.Params.ModelName,
			"batch_size": trial.Params.BatchSize,
			"objective":  trial.Value,
		})
	}
	return nil
}

// runTrial executes one pipeline run under a nested scope and derives the
// objective from its evaluation metrics.
func (o *Optimizer) runTrial(ctx context.Context, studyScope *tracking.Scope, number int, params pipeline.Params) (Trial, error) {
	scope, err := studyScope.StartNested(ctx, fmt.Sprintf("trial-%d", number))
	if err != nil {
		return Trial{}, err
	}

	if err := scope.LogParam("trial_number", strconv.Itoa(number)); err != nil {
		return Trial{}, err
	}

	result, runErr := o.pipe.Execute(ctx, scope, params)

	var value float64
	if runErr == nil {
		value = objectiveScore(result.Metrics)
		runErr = scope.LogMetric("objective_score", value)
	}
	if closeErr := scope.Close(ctx, runErr); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return Trial{}, runErr
	}

	return Trial{Number: number, Params: params, Value: value}, nil
}

// logBest records the winning configuration under its own top-level scope,
// so consumers can find the search outcome without walking every trial.
func (o *Optimizer) logBest(ctx context.Context, study *Study) error {
	scope, err := o.store.StartRun(ctx, o.cfg.ExperimentName, "search_best")
	if err != nil {
		return err
	}

	logErr := scope.LogParams(map[string]string{
		"study":           study.Name,
		"best_model_name": study.BestParams.ModelName,
		"best_batch_size": strconv.Itoa(study.BestParams.BatchSize),
	})
	if logErr == nil {
		logErr = scope.LogMetric("best_value", study.BestValue)
	}
	if closeErr := scope.Close(ctx, logErr); closeErr != nil && logErr == nil {
		logErr = closeErr
	}
	return logErr
}
