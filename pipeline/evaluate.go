package pipeline

import (
	"context"
	"errors"
	"math"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/tracking"
)

// accuracyTolerance is the absolute-error bound under which a prediction
// counts as accurate.
const accuracyTolerance = 0.15

// Evaluate computes run metrics and logs them to the open scope.
//
// When the gold-standard table exists, it is inner-joined on login against
// the profiles; rows without a numeric human relevance or agent score are
// dropped, and the remainder yields "mae" and "accuracy" (the percentage of
// rows with absolute error below the tolerance). A missing or unjoinable
// gold table skips those two metrics silently. Dataset metrics
// (num_profiles, embedding_dim, avg_profile_length) are always reported.
func Evaluate(ctx context.Context, scope *tracking.Scope, cfg Config, profiles []dataset.Profile, vectors [][]float32) (map[string]float64, error) {
	metrics := map[string]float64{}

	gold, err := dataset.ReadGold(cfg.GoldPath)
	if err != nil && !errors.Is(err, dataset.ErrMissingSource) {
		return nil, err
	}
	if err == nil {
		if mae, accuracy, n := scoreAgainstGold(gold, profiles); n > 0 {
			metrics["mae"] = mae
			metrics["accuracy"] = accuracy
		}
	}

	metrics["num_profiles"] = float64(len(profiles))
	if len(vectors) > 0 {
		metrics["embedding_dim"] = float64(len(vectors[0]))
	}
	metrics["avg_profile_length"] = meanTextLength(profiles)

	for key, value := range metrics {
		if err := scope.LogMetric(key, value); err != nil {
			return nil, err
		}
	}

	return metrics, nil
}

// scoreAgainstGold inner-joins gold rows with profiles on login and scores
// the already-applied agent scores against the human relevance. Returns the
// joined row count alongside the metrics; zero rows means no score.
func scoreAgainstGold(gold []dataset.Gold, profiles []dataset.Profile) (mae, accuracy float64, n int) {
	byLogin := make(map[string]*dataset.Profile, len(profiles))
	for i := range profiles {
		byLogin[profiles[i].Login] = &profiles[i]
	}

	var absErrSum float64
	var within int
	for _, g := range gold {
		p, ok := byLogin[g.Login]
		if !ok {
			continue
		}
		if math.IsNaN(g.Relevance) || !p.HasAgentScore() {
			continue
		}

		absErr := math.Abs(g.Relevance - p.AgentScore)
		absErrSum += absErr
		if absErr < accuracyTolerance {
			within++
		}
		n++
	}

	if n == 0 {
		return 0, 0, 0
	}
	return absErrSum / float64(n), float64(within) / float64(n) * 100, n
}

func meanTextLength(profiles []dataset.Profile) float64 {
	if len(profiles) == 0 {
		return 0
	}
	var total int
	for _, p := range profiles {
		total += len(p.ProfileText)
	}
	return float64(total) / float64(len(profiles))
}
