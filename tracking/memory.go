package tracking

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// memoryStore is an in-process Store used by tests and local single-node
// runs. It keeps experiments in creation order and artifact payloads in a
// plain map.
type memoryStore struct {
	mu          sync.RWMutex
	experiments []Experiment
	runs        map[string]*memoryRun
	runsByExp   map[string][]string
	blobs       map[string][]byte
	seq         int
}

type memoryRun struct {
	run Run
	seq int
}

// NewMemoryStore creates an empty in-memory tracking store.
func NewMemoryStore() Store {
	return &memoryStore{
		runs:      map[string]*memoryRun{},
		runsByExp: map[string][]string{},
		blobs:     map[string][]byte{},
	}
}

func (m *memoryStore) Endpoint() string {
	return "memory://"
}

func (m *memoryStore) ListExperiments(ctx context.Context) ([]Experiment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Experiment, len(m.experiments))
	copy(out, m.experiments)
	return out, nil
}

func (m *memoryStore) SearchRuns(ctx context.Context, experimentID string, order RunOrder, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.runsByExp[experimentID]
	rows := make([]*memoryRun, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, m.runs[id])
	}

	if order == OrderStartTimeDesc {
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].run.Info.StartTime.Equal(rows[j].run.Info.StartTime) {
				return rows[i].run.Info.StartTime.After(rows[j].run.Info.StartTime)
			}
			// Start times can collide at clock resolution; fall back to
			// creation sequence so ordering stays deterministic.
			return rows[i].seq > rows[j].seq
		})
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]Run, len(rows))
	for i, r := range rows {
		out[i] = cloneRun(r.run)
	}
	return out, nil
}

func (m *memoryStore) ListArtifacts(ctx context.Context, runID string) ([]Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.runs[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	out := make([]Artifact, len(row.run.Artifacts))
	copy(out, row.run.Artifacts)
	return out, nil
}

func (m *memoryStore) LoadArtifact(ctx context.Context, uri string) ([]byte, error) {
	runID, name, err := ParseArtifactURI(uri)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[runID+"/"+name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, uri)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *memoryStore) StartRun(ctx context.Context, experimentName, runName string) (*Scope, error) {
	expID := m.ensureExperiment(experimentName)
	return newScope(ctx, m, expID, runName)
}

func (m *memoryStore) ensureExperiment(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, exp := range m.experiments {
		if exp.Name == name {
			return exp.ID
		}
	}
	exp := Experiment{ID: fmt.Sprintf("exp-%d", len(m.experiments)+1), Name: name}
	m.experiments = append(m.experiments, exp)
	return exp.ID
}

func (m *memoryStore) createRun(ctx context.Context, info RunInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.runs[info.RunID] = &memoryRun{
		run: Run{Info: info, Params: map[string]string{}, Metrics: map[string]float64{}},
		seq: m.seq,
	}
	m.runsByExp[info.ExperimentID] = append(m.runsByExp[info.ExperimentID], info.RunID)
	return nil
}

func (m *memoryStore) finishRun(ctx context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.runs[run.Info.RunID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.Info.RunID)
	}
	row.run = cloneRun(*run)
	return nil
}

func (m *memoryStore) putArtifact(ctx context.Context, runID, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := runID + "/" + name
	payload := make([]byte, len(data))
	copy(payload, data)
	m.blobs[path] = payload
	return path, nil
}

func cloneRun(r Run) Run {
	out := Run{Info: r.Info, Params: map[string]string{}, Metrics: map[string]float64{}}
	for k, v := range r.Params {
		out.Params[k] = v
	}
	for k, v := range r.Metrics {
		out.Metrics[k] = v
	}
	out.Artifacts = append(out.Artifacts, r.Artifacts...)
	return out
}
