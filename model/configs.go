package model

import (
	"os"
	"runtime"
	"strconv"
)

// DefaultArtifactName is the artifact name the training pipeline logs the
// model descriptor under.
const DefaultArtifactName = "embedding_model"

// Config holds model manager configuration.
type Config struct {
	// ArtifactName is the model artifact name searched for in the store.
	ArtifactName string

	// EncodeWorkers bounds concurrent encode operations on the serving
	// path, so a slow encode cannot starve unrelated requests.
	EncodeWorkers int
}

// NewConfig reads manager configuration from environment variables.
//
// Variables:
//   - MODEL_ARTIFACT_NAME (default "embedding_model")
//   - MODEL_ENCODE_WORKERS (default GOMAXPROCS)
func NewConfig() Config {
	artifact := os.Getenv("MODEL_ARTIFACT_NAME")
	if artifact == "" {
		artifact = DefaultArtifactName
	}

	workers := runtime.GOMAXPROCS(0)
	if v := os.Getenv("MODEL_ENCODE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	return Config{
		ArtifactName:  artifact,
		EncodeWorkers: workers,
	}
}
