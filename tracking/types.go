package tracking

import "time"

// Experiment groups related runs under a name.
type Experiment struct {
	ID   string
	Name string
}

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusRunning  RunStatus = "RUNNING"
	StatusFinished RunStatus = "FINISHED"
	StatusFailed   RunStatus = "FAILED"
)

// RunInfo identifies a run and records when it started.
type RunInfo struct {
	ExperimentID string
	RunID        string
	Name         string
	Status       RunStatus
	StartTime    time.Time
}

// Run is one recorded execution with its parameters, metrics, and artifacts.
// Once its scope is closed a run never changes.
type Run struct {
	Info      RunInfo
	Params    map[string]string
	Metrics   map[string]float64
	Artifacts []Artifact
}

// Artifact is a named, retrievable output of a run.
type Artifact struct {
	// Name is the logical artifact name, e.g. "embedding_model".
	Name string

	// Path is the storage path of the payload, "<run_id>/<name>".
	Path string
}

// RunOrder selects the ordering of SearchRuns results.
type RunOrder string

// OrderStartTimeDesc orders runs by start time, newest first.
const OrderStartTimeDesc RunOrder = "start_time DESC"
