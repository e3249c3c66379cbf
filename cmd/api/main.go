// Command api runs the talenthunt serving instance: prediction endpoints,
// model management, and agent search, with metrics and tracing.
package main

import (
	"go.uber.org/fx"

	"github.com/talenthunt/talenthunt/api"
	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/enrich"
	"github.com/talenthunt/talenthunt/events"
	"github.com/talenthunt/talenthunt/index"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/metrics"
	"github.com/talenthunt/talenthunt/model"
	"github.com/talenthunt/talenthunt/pipeline"
	"github.com/talenthunt/talenthunt/tracer"
	"github.com/talenthunt/talenthunt/tracking"
)

func main() {
	fx.New(
		logger.FXModule,
		tracer.FXModule,
		metrics.FXModule,
		tracking.FXModule,
		embedding.FXModule,
		model.FXModule,
		index.FXModule,
		enrich.FXModule,
		events.FXModule,
		pipeline.FXModule,
		api.FXModule,
	).Run()
}
