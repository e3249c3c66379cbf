package optimize

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls the hyperparameter search loop.
type Config struct {
	// Trials is the number of sequential trials to run.
	Trials int

	// Seed seeds the categorical sampler. Zero means a time-based seed.
	Seed int64

	// StudyName names the umbrella run grouping the trials.
	StudyName string

	// ExperimentName is the tracking experiment trials log under. It matches
	// the pipeline's experiment so trial runs and training runs live side by
	// side.
	ExperimentName string
}

// NewConfig reads the search configuration from environment variables.
//
// Variables:
//   - OPTIMIZE_TRIALS (default 10)
//   - OPTIMIZE_SEED (default: time-based)
//   - OPTIMIZE_STUDY (default "model-search")
//   - TRACKING_EXPERIMENT (default "talent-matching")
func NewConfig() Config {
	cfg := Config{
		Trials:         10,
		Seed:           time.Now().UnixNano(),
		StudyName:      "model-search",
		ExperimentName: "talent-matching",
	}

	if v := os.Getenv("OPTIMIZE_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trials = n
		}
	}
	if v := os.Getenv("OPTIMIZE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("OPTIMIZE_STUDY"); v != "" {
		cfg.StudyName = v
	}
	if v := os.Getenv("TRACKING_EXPERIMENT"); v != "" {
		cfg.ExperimentName = v
	}

	return cfg
}

// Validate checks the search configuration.
func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("optimize: trials must be at least 1, got %d", c.Trials)
	}
	if c.StudyName == "" {
		return fmt.Errorf("optimize: study name must not be empty")
	}
	return nil
}
