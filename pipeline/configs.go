package pipeline

import (
	"os"
	"path/filepath"
)

// Config holds the pipeline's file layout and run naming.
type Config struct {
	// UsersPath and ReposPath are the required raw inputs.
	UsersPath string
	ReposPath string

	// GoldPath is the optional gold-standard relevance table.
	GoldPath string

	// ProfilesPath is the processed profile table, shared with the serving
	// layer (which writes agent scores back into it).
	ProfilesPath string

	// ExperimentName is the tracking experiment pipeline runs log under.
	ExperimentName string
}

// NewConfig reads the pipeline layout from environment variables.
//
// Variables:
//   - DATA_DIR (default "data"): root of the conventional layout
//     raw/github_users.csv, raw/github_repos.csv,
//     processed/gold_standard.csv, processed/profiles_enriched.csv
//   - TRACKING_EXPERIMENT (default "talent-matching")
func NewConfig() Config {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	experiment := os.Getenv("TRACKING_EXPERIMENT")
	if experiment == "" {
		experiment = "talent-matching"
	}

	return Config{
		UsersPath:      filepath.Join(dataDir, "raw", "github_users.csv"),
		ReposPath:      filepath.Join(dataDir, "raw", "github_repos.csv"),
		GoldPath:       filepath.Join(dataDir, "processed", "gold_standard.csv"),
		ProfilesPath:   filepath.Join(dataDir, "processed", "profiles_enriched.csv"),
		ExperimentName: experiment,
	}
}

// Params are the tunable inputs of one pipeline run. They are exactly the
// dimensions the hyperparameter search explores.
type Params struct {
	ModelName string
	BatchSize int
}

// DefaultParams returns the parameters used outside hyperparameter search.
func DefaultParams() Params {
	return Params{
		ModelName: "sentence-transformers/all-MiniLM-L6-v2",
		BatchSize: 32,
	}
}
