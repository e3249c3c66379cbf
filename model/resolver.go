package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/talenthunt/talenthunt/tracking"
)

// Resolver locates model artifacts in the tracking store.
type Resolver struct {
	store tracking.Reader
}

// NewResolver creates a Resolver over the read-only store view.
func NewResolver(store tracking.Reader) *Resolver {
	return &Resolver{store: store}
}

// ResolveLatest returns the run id of the most appropriate run producing
// the named artifact.
//
// Experiments are walked in the order the store returns them. For each, the
// single most recent run is fetched; the first experiment whose latest run
// lists an artifact containing artifactName in its path wins and the search
// stops. When no experiment matches, ErrModelNotFound is returned.
func (r *Resolver) ResolveLatest(ctx context.Context, artifactName string) (string, error) {
	experiments, err := r.store.ListExperiments(ctx)
	if err != nil {
		return "", fmt.Errorf("model: list experiments: %w", err)
	}

	for _, exp := range experiments {
		runs, err := r.store.SearchRuns(ctx, exp.ID, tracking.OrderStartTimeDesc, 1)
		if err != nil {
			return "", fmt.Errorf("model: search runs in %q: %w", exp.Name, err)
		}
		if len(runs) == 0 {
			continue
		}

		run := runs[0]
		artifacts, err := r.store.ListArtifacts(ctx, run.Info.RunID)
		if err != nil {
			return "", fmt.Errorf("model: list artifacts of %s: %w", run.Info.RunID, err)
		}
		for _, a := range artifacts {
			if strings.Contains(a.Path, artifactName) {
				return run.Info.RunID, nil
			}
		}
	}

	return "", fmt.Errorf("%w: artifact %q", ErrModelNotFound, artifactName)
}

// ResolveURI builds the loadable reference for a run's artifact.
func (r *Resolver) ResolveURI(runID, artifactName string) string {
	return tracking.ArtifactURI(runID, artifactName)
}
