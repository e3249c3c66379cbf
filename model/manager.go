package model

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/tracking"
)

// VersionDefault is reported when no tracked version is loaded.
const VersionDefault = "default"

// Info is a read-only snapshot of the manager state.
type Info struct {
	ModelVersion     string   `json:"model_version"`
	TrackingEndpoint string   `json:"tracking_endpoint"`
	CachedVersions   []string `json:"cached_versions"`
}

// Manager owns the current encoder and a version-keyed cache of previously
// loaded encoders, and serves embedding and similarity predictions.
//
// The cache is insertion-only. Loads run outside the lock, so concurrent
// first-loads of the same version may fetch redundantly; loads are
// idempotent and the last writer wins the cache slot.
type Manager struct {
	cfg      Config
	store    tracking.Reader
	resolver *Resolver
	registry *embedding.Registry
	log      *logger.Logger
	pool     *ants.Pool

	mu             sync.Mutex
	current        embedding.Encoder
	currentVersion string
	cache          map[string]embedding.Encoder
}

// NewManager builds a Manager. The encode worker pool bounds concurrent
// encodes on the serving path.
func NewManager(cfg Config, store tracking.Reader, registry *embedding.Registry, log *logger.Logger) (*Manager, error) {
	pool, err := ants.NewPool(cfg.EncodeWorkers)
	if err != nil {
		return nil, fmt.Errorf("model: failed to create encode pool: %w", err)
	}

	return &Manager{
		cfg:      cfg,
		store:    store,
		resolver: NewResolver(store),
		registry: registry,
		log:      log,
		pool:     pool,
		cache:    map[string]embedding.Encoder{},
	}, nil
}

// Close releases the encode worker pool.
func (m *Manager) Close() error {
	m.pool.Release()
	return nil
}

// CheckTracking verifies the tracking store is reachable with a cheap read.
func (m *Manager) CheckTracking(ctx context.Context) error {
	_, err := m.store.ListExperiments(ctx)
	return err
}

// LoadLatest loads the most recent tracked model and makes it current.
// Resolution misses and load failures fall back to the default policy and
// are never surfaced as errors.
func (m *Manager) LoadLatest(ctx context.Context) embedding.Encoder {
	runID, err := m.resolver.ResolveLatest(ctx, m.cfg.ArtifactName)
	if err != nil {
		m.log.Warn("no tracked model found, using default", err, nil)
		return m.loadDefault()
	}

	enc, err := m.fetch(ctx, runID)
	if err != nil {
		m.log.Warn("failed to load latest model, using default", err, map[string]interface{}{"version": runID})
		return m.loadDefault()
	}

	m.mu.Lock()
	m.current = enc
	m.currentVersion = runID
	m.cache[runID] = enc
	m.mu.Unlock()

	m.log.Info("loaded latest model", nil, map[string]interface{}{"version": runID, "model": enc.Name()})
	return enc
}

// LoadVersion returns the encoder for a specific version. Cached versions
// are returned without I/O. A failed load falls back to the default policy
// and the failed version is not cached. The current pointer is untouched.
func (m *Manager) LoadVersion(ctx context.Context, versionID string) embedding.Encoder {
	m.mu.Lock()
	if enc, ok := m.cache[versionID]; ok {
		m.mu.Unlock()
		return enc
	}
	m.mu.Unlock()

	enc, err := m.fetch(ctx, versionID)
	if err != nil {
		m.log.Warn("failed to load model version, using default", err, map[string]interface{}{"version": versionID})
		return m.loadDefault()
	}

	m.mu.Lock()
	m.cache[versionID] = enc
	m.mu.Unlock()
	return enc
}

// LoadVersionStrict loads and caches a specific version, returning
// ErrModelNotFound when it cannot be resolved or loaded. Used by the
// version-load endpoint, which must surface misses instead of silently
// serving a fallback.
func (m *Manager) LoadVersionStrict(ctx context.Context, versionID string) (embedding.Encoder, error) {
	m.mu.Lock()
	if enc, ok := m.cache[versionID]; ok {
		m.mu.Unlock()
		return enc, nil
	}
	m.mu.Unlock()

	enc, err := m.fetch(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %v", ErrModelNotFound, versionID, err)
	}

	m.mu.Lock()
	m.cache[versionID] = enc
	m.mu.Unlock()
	return enc, nil
}

// fetch loads the model descriptor artifact of a run and rebuilds its
// encoder.
func (m *Manager) fetch(ctx context.Context, runID string) (embedding.Encoder, error) {
	uri := m.resolver.ResolveURI(runID, m.cfg.ArtifactName)
	data, err := m.store.LoadArtifact(ctx, uri)
	if err != nil {
		return nil, err
	}
	return m.registry.FromDescriptor(data)
}

// loadDefault implements the default policy: whatever encoder is already
// current, or a freshly built baseline when nothing is loaded yet. The
// version stays unset so Info reports "default" only when the baseline was
// never replaced.
func (m *Manager) loadDefault() embedding.Encoder {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return m.current
	}

	baseline, err := m.registry.Baseline()
	if err != nil {
		// The baseline is built from the static catalog; this cannot fail
		// unless the catalog itself is broken.
		m.log.Fatal("failed to build baseline encoder", err, nil)
	}
	m.log.Info("loaded baseline model", nil, map[string]interface{}{"model": baseline.Name()})
	m.current = baseline
	return baseline
}

// resolveEncoder picks the encoder for a prediction: the pinned version
// when given, else the current one, else the latest tracked model.
func (m *Manager) resolveEncoder(ctx context.Context, version string) (embedding.Encoder, string) {
	if version != "" {
		return m.LoadVersion(ctx, version), version
	}

	m.mu.Lock()
	current, currentVersion := m.current, m.currentVersion
	m.mu.Unlock()

	if current != nil {
		if currentVersion == "" {
			currentVersion = VersionDefault
		}
		return current, currentVersion
	}

	enc := m.LoadLatest(ctx)
	m.mu.Lock()
	version = m.currentVersion
	m.mu.Unlock()
	if version == "" {
		version = VersionDefault
	}
	return enc, version
}

// PredictEmbedding encodes a single text into a unit-norm vector.
// Encode failures propagate to the caller.
func (m *Manager) PredictEmbedding(ctx context.Context, text, version string) ([]float32, string, error) {
	enc, used := m.resolveEncoder(ctx, version)

	vec, err := m.encode(ctx, enc, text)
	if err != nil {
		return nil, used, err
	}
	return vec, used, nil
}

// PredictSimilarity returns the cosine similarity of two texts under the
// same encoder resolution. Both texts are encoded independently.
func (m *Manager) PredictSimilarity(ctx context.Context, text1, text2, version string) (float64, string, error) {
	vec1, used, err := m.PredictEmbedding(ctx, text1, version)
	if err != nil {
		return 0, used, err
	}
	vec2, _, err := m.PredictEmbedding(ctx, text2, version)
	if err != nil {
		return 0, used, err
	}
	return embedding.Dot(vec1, vec2), used, nil
}

// ModelInfo returns a snapshot of the manager state.
func (m *Manager) ModelInfo() Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	version := m.currentVersion
	if version == "" {
		version = VersionDefault
	}

	cached := make([]string, 0, len(m.cache))
	for v := range m.cache {
		cached = append(cached, v)
	}
	sort.Strings(cached)

	return Info{
		ModelVersion:     version,
		TrackingEndpoint: m.store.Endpoint(),
		CachedVersions:   cached,
	}
}

// encode runs one encode on the bounded worker pool and waits for it.
func (m *Manager) encode(ctx context.Context, enc embedding.Encoder, text string) ([]float32, error) {
	var (
		vec    []float32
		encErr error
	)
	done := make(chan struct{})

	if err := m.pool.Submit(func() {
		defer close(done)
		vecs, err := enc.Encode(ctx, []string{text})
		if err != nil {
			encErr = err
			return
		}
		if len(vecs) != 1 {
			encErr = fmt.Errorf("model: expected 1 vector, got %d", len(vecs))
			return
		}
		vec = vecs[0]
	}); err != nil {
		return nil, fmt.Errorf("model: encode pool rejected task: %w", err)
	}

	select {
	case <-done:
		return vec, encErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
