package tracking

import "errors"

var (
	// ErrArtifactNotFound is returned when an artifact URI does not resolve
	// to a stored payload.
	ErrArtifactNotFound = errors.New("tracking: artifact not found")

	// ErrRunNotFound is returned when a run id is unknown to the store.
	ErrRunNotFound = errors.New("tracking: run not found")

	// ErrScopeClosed is returned when logging into a scope after Close.
	ErrScopeClosed = errors.New("tracking: scope already closed")

	// ErrBadURI is returned for artifact references that are not of the
	// form "run:<run_id>/<artifact_name>".
	ErrBadURI = errors.New("tracking: malformed artifact uri")
)
