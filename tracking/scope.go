package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// scopeSink is the store-side half of a Scope. Implementations persist the
// run skeleton at creation and the accumulated params, metrics, and artifact
// index when the scope closes.
type scopeSink interface {
	createRun(ctx context.Context, info RunInfo) error
	finishRun(ctx context.Context, run *Run) error
	putArtifact(ctx context.Context, runID, name string, data []byte) (path string, err error)
}

// Scope is an open tracking run. Params and metrics may only be logged while
// the scope is open; Close finalizes the run and is idempotent.
//
// A Scope is safe for use from a single goroutine, which matches the strictly
// sequential pipeline and search loop.
type Scope struct {
	store        scopeSink
	experimentID string

	mu     sync.Mutex
	run    Run
	closed bool
}

func newScope(ctx context.Context, store scopeSink, experimentID, runName string) (*Scope, error) {
	info := RunInfo{
		ExperimentID: experimentID,
		RunID:        uuid.NewString(),
		Name:         runName,
		Status:       StatusRunning,
		StartTime:    time.Now().UTC(),
	}
	if err := store.createRun(ctx, info); err != nil {
		return nil, err
	}
	return &Scope{
		store:        store,
		experimentID: experimentID,
		run: Run{
			Info:    info,
			Params:  map[string]string{},
			Metrics: map[string]float64{},
		},
	}, nil
}

// RunID returns the identifier of the underlying run.
func (s *Scope) RunID() string {
	return s.run.Info.RunID
}

// LogParam records a single parameter. No-op after Close.
func (s *Scope) LogParam(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScopeClosed
	}
	s.run.Params[key] = value
	return nil
}

// LogParams records a batch of parameters. No-op after Close.
func (s *Scope) LogParams(params map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScopeClosed
	}
	for k, v := range params {
		s.run.Params[k] = v
	}
	return nil
}

// LogMetric records a metric value. No-op after Close.
func (s *Scope) LogMetric(key string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScopeClosed
	}
	s.run.Metrics[key] = value
	return nil
}

// LogArtifact stores a named artifact payload for the run. The payload is
// written immediately; the artifact becomes listed once the scope closes.
func (s *Scope) LogArtifact(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrScopeClosed
	}
	runID := s.run.Info.RunID
	s.mu.Unlock()

	path, err := s.store.putArtifact(ctx, runID, name, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScopeClosed
	}
	s.run.Artifacts = append(s.run.Artifacts, Artifact{Name: name, Path: path})
	return nil
}

// StartNested opens a child run in the same experiment. The child records
// its parent's run id under the "parent_run_id" param, so a study and its
// trials stay connected in the store.
func (s *Scope) StartNested(ctx context.Context, runName string) (*Scope, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrScopeClosed
	}
	parentID := s.run.Info.RunID
	s.mu.Unlock()

	child, err := newScope(ctx, s.store, s.experimentID, runName)
	if err != nil {
		return nil, err
	}
	child.run.Params["parent_run_id"] = parentID
	return child, nil
}

// Close finalizes the run, marking it FINISHED, or FAILED when runErr is
// non-nil. Calling Close more than once is a no-op.
func (s *Scope) Close(ctx context.Context, runErr error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.run.Info.Status = StatusFinished
	if runErr != nil {
		s.run.Info.Status = StatusFailed
	}
	final := s.run
	s.mu.Unlock()

	return s.store.finishRun(ctx, &final)
}
