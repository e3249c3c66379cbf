package tracking

import (
	"context"
	"fmt"
	"strings"
)

// Reader is the read-only view of the store consumed by the model version
// resolver. The serving path never mutates the store.
type Reader interface {
	// ListExperiments returns all experiments in store order. The order is
	// not guaranteed to be chronological.
	ListExperiments(ctx context.Context) ([]Experiment, error)

	// SearchRuns returns runs of an experiment in the requested order,
	// truncated to limit. A limit of 0 means no limit.
	SearchRuns(ctx context.Context, experimentID string, order RunOrder, limit int) ([]Run, error)

	// ListArtifacts returns the artifacts recorded for a run.
	ListArtifacts(ctx context.Context, runID string) ([]Artifact, error)

	// LoadArtifact fetches an artifact payload by its reference of the form
	// "run:<run_id>/<artifact_name>". Returns ErrArtifactNotFound if the
	// reference does not resolve.
	LoadArtifact(ctx context.Context, uri string) ([]byte, error)

	// Endpoint describes where the store lives, for diagnostics.
	Endpoint() string
}

// Store is the full tracking store protocol: reading plus opening run scopes.
type Store interface {
	Reader

	// StartRun opens a new top-level run scope under the named experiment,
	// creating the experiment if it does not exist yet.
	StartRun(ctx context.Context, experimentName, runName string) (*Scope, error)
}

// URIScheme prefixes every artifact reference.
const URIScheme = "run:"

// ArtifactURI builds the canonical artifact reference for a run and name.
func ArtifactURI(runID, artifactName string) string {
	return fmt.Sprintf("%s%s/%s", URIScheme, runID, artifactName)
}

// ParseArtifactURI splits "run:<run_id>/<artifact_name>" into its parts.
func ParseArtifactURI(uri string) (runID, artifactName string, err error) {
	rest, ok := strings.CutPrefix(uri, URIScheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	runID, artifactName, ok = strings.Cut(rest, "/")
	if !ok || runID == "" || artifactName == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	return runID, artifactName, nil
}
