package optimize

import (
	"math"

	"github.com/talenthunt/talenthunt/pipeline"
)

// Trial is one sampled configuration and its resulting objective score.
type Trial struct {
	Number int
	Params pipeline.Params
	Value  float64
}

// Study is an ordered sequence of trials maximizing the objective.
type Study struct {
	Name       string
	Trials     []Trial
	BestParams pipeline.Params
	BestValue  float64
}

func newStudy(name string) *Study {
	return &Study{
		Name:      name,
		BestValue: math.Inf(-1),
	}
}

// record appends a finished trial and updates the running maximum.
func (s *Study) record(t Trial) {
	s.Trials = append(s.Trials, t)
	if t.Value > s.BestValue {
		s.BestValue = t.Value
		s.BestParams = t.Params
	}
}

// objectiveScore derives the scalar objective from evaluation metrics.
// Accuracy wins over MAE even when both are present; MAE is negated so the
// study can always maximize. Profile count is the signal-free fallback for
// runs without gold data.
func objectiveScore(metrics map[string]float64) float64 {
	if v, ok := metrics["accuracy"]; ok {
		return v
	}
	if v, ok := metrics["mae"]; ok {
		return -v
	}
	return metrics["num_profiles"]
}
