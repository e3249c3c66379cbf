package index

import (
	"go.uber.org/fx"

	"github.com/talenthunt/talenthunt/pipeline"
)

// FXModule provides the profile index and exposes it as the pipeline's
// vector sink. When the index is disabled the sink binding is absent and
// the pipeline skips vector publishing.
var FXModule = fx.Module("index",
	fx.Provide(
		NewConfig,
		NewIndex,
		AsVectorSink,
	),
)

// AsVectorSink adapts the index to the pipeline's sink interface. A
// disabled index yields a nil sink, which the pipeline treats as absent.
func AsVectorSink(idx *Index) pipeline.VectorSink {
	if idx == nil {
		return nil
	}
	return idx
}
