package pipeline

import (
	"go.uber.org/fx"

	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/metrics"
	"github.com/talenthunt/talenthunt/tracking"
)

// FXModule provides the pipeline with its optional collaborators wired in
// when they are present in the graph.
var FXModule = fx.Module("pipeline",
	fx.Provide(
		NewConfig,
		NewPipelineWithDI,
	),
)

// PipelineParams groups the pipeline dependencies. Sink, publisher, and
// metrics are optional; a missing binding simply disables the feature.
type PipelineParams struct {
	fx.In

	Config   Config
	Store    tracking.Store
	Registry *embedding.Registry
	Logger   *logger.Logger

	Sink      VectorSink       `optional:"true"`
	Publisher RunPublisher     `optional:"true"`
	Metrics   *metrics.Metrics `optional:"true"`
}

// NewPipelineWithDI builds the pipeline from the Fx graph.
func NewPipelineWithDI(params PipelineParams) *Pipeline {
	p := NewPipeline(params.Config, params.Store, params.Registry, params.Logger)
	if params.Sink != nil {
		p.WithVectorSink(params.Sink)
	}
	if params.Publisher != nil {
		p.WithPublisher(params.Publisher)
	}
	if params.Metrics != nil {
		p.WithMetrics(params.Metrics)
	}
	return p
}
