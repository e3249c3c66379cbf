package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/metrics"
	"github.com/talenthunt/talenthunt/tracking"
)

// VectorSink receives the trained profile vectors, typically a vector
// index used by the search surface.
type VectorSink interface {
	UpsertProfiles(ctx context.Context, profiles []dataset.Profile, vectors [][]float32) error
}

// RunPublisher is notified when a pipeline run finishes successfully, so
// serving instances can hot-reload the new model.
type RunPublisher interface {
	PublishRunCompleted(ctx context.Context, runID string) error
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID   string
	Metrics map[string]float64
}

// Pipeline composes the four stages over a tracking store.
type Pipeline struct {
	cfg      Config
	store    tracking.Store
	registry *embedding.Registry
	log      *logger.Logger

	// Optional collaborators; nil disables them.
	sink      VectorSink
	publisher RunPublisher
	metrics   *metrics.Metrics
}

// NewPipeline builds a pipeline over the given store and model registry.
func NewPipeline(cfg Config, store tracking.Store, registry *embedding.Registry, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		registry: registry,
		log:      log,
	}
}

// WithVectorSink publishes trained vectors to a search index after Train.
func (p *Pipeline) WithVectorSink(sink VectorSink) *Pipeline {
	p.sink = sink
	return p
}

// WithPublisher emits a run-completed event after a successful run.
func (p *Pipeline) WithPublisher(pub RunPublisher) *Pipeline {
	p.publisher = pub
	return p
}

// WithMetrics records stage durations and run counts.
func (p *Pipeline) WithMetrics(m *metrics.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// Run executes the full pipeline under a fresh top-level tracking scope.
func (p *Pipeline) Run(ctx context.Context, params Params) (Result, error) {
	scope, err := p.store.StartRun(ctx, p.cfg.ExperimentName, "training")
	if err != nil {
		return Result{}, err
	}

	result, runErr := p.Execute(ctx, scope, params)
	if closeErr := scope.Close(ctx, runErr); closeErr != nil && runErr == nil {
		runErr = closeErr
	}

	if runErr != nil {
		p.metrics.IncPipelineRun("failed")
		return Result{}, runErr
	}

	p.metrics.IncPipelineRun("finished")
	if p.publisher != nil {
		if err := p.publisher.PublishRunCompleted(ctx, result.RunID); err != nil {
			// Notification is best effort; the run itself succeeded.
			p.log.Warn("failed to publish run-completed event", err, map[string]interface{}{"run_id": result.RunID})
		}
	}
	return result, nil
}

// Execute runs the four stages sequentially, logging into the given scope.
// The hyperparameter search loop calls this with a nested trial scope.
func (p *Pipeline) Execute(ctx context.Context, scope *tracking.Scope, params Params) (Result, error) {
	tr := otel.Tracer("pipeline")
	ctx, span := tr.Start(ctx, "pipeline.run")
	span.SetAttributes(
		attribute.String("model_name", params.ModelName),
		attribute.Int("batch_size", params.BatchSize),
	)
	defer span.End()

	raw, err := timedStage(p, ctx, "load", func(ctx context.Context) (RawData, error) {
		return Load(p.cfg)
	})
	if err != nil {
		return Result{}, err
	}
	p.log.Info("raw data loaded", nil, map[string]interface{}{
		"users": len(raw.Users),
		"repos": len(raw.Repos),
	})

	profiles, err := timedStage(p, ctx, "preprocess", func(ctx context.Context) ([]dataset.Profile, error) {
		processed := Preprocess(raw.Users, raw.Repos)
		p.carryAgentScores(processed)
		return processed, nil
	})
	if err != nil {
		return Result{}, err
	}
	p.log.Info("profiles enriched", nil, map[string]interface{}{"profiles": len(profiles)})

	vectors, err := timedStage(p, ctx, "train", func(ctx context.Context) ([][]float32, error) {
		_, vecs, err := Train(ctx, scope, p.registry, profiles, params)
		return vecs, err
	})
	if err != nil {
		return Result{}, err
	}

	if err := dataset.WriteProfiles(p.cfg.ProfilesPath, profiles); err != nil {
		return Result{}, err
	}

	if p.sink != nil {
		if err := p.sink.UpsertProfiles(ctx, profiles, vectors); err != nil {
			// The run is still valid without the index; search just serves
			// the previous vectors until the next run.
			p.log.Warn("failed to upsert vectors into search index", err, nil)
		}
	}

	runMetrics, err := timedStage(p, ctx, "evaluate", func(ctx context.Context) (map[string]float64, error) {
		return Evaluate(ctx, scope, p.cfg, profiles, vectors)
	})
	if err != nil {
		return Result{}, err
	}
	p.log.Info("pipeline run evaluated", nil, map[string]interface{}{
		"run_id":  scope.RunID(),
		"metrics": runMetrics,
	})

	return Result{RunID: scope.RunID(), Metrics: runMetrics}, nil
}

// carryAgentScores copies previously written agent scores from the profile
// table on disk into the freshly processed profiles, so evaluation can
// compare them against the gold standard.
func (p *Pipeline) carryAgentScores(profiles []dataset.Profile) {
	existing, err := dataset.ReadProfiles(p.cfg.ProfilesPath)
	if err != nil {
		return
	}

	scores := make(map[string]float64, len(existing))
	for _, prev := range existing {
		if prev.HasAgentScore() {
			scores[prev.Login] = prev.AgentScore
		}
	}
	for i := range profiles {
		if score, ok := scores[profiles[i].Login]; ok {
			profiles[i].AgentScore = score
		}
	}
}

// timedStage runs one stage inside a span and records its duration.
func timedStage[T any](p *Pipeline, ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := otel.Tracer("pipeline").Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	out, err := fn(ctx)
	p.metrics.ObserveStage(name, time.Since(start).Seconds())
	return out, err
}
