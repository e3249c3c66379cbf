package tracking

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/talenthunt/talenthunt/logger"
)

// FXModule provides the tracking Store selected by Config.Backend.
//
// It supplies:
//   - Config            (NewConfig)
//   - Store             (memory or postgres+minio)
//   - Reader            (the same store, read-only view)
var FXModule = fx.Module("tracking",
	fx.Provide(
		NewConfig,
		NewStore,
		func(s Store) Reader { return s },
	),
)

// NewStore builds the Store implementation selected by cfg.Backend.
func NewStore(cfg Config, log *logger.Logger) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendMemory:
		log.Info("tracking store initialized", nil, map[string]interface{}{"backend": "memory"})
		return NewMemoryStore(), nil

	case BackendPostgres:
		blobs, err := NewMinioBlobStore(context.Background(), cfg.Minio)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(cfg, blobs)
		if err != nil {
			return nil, err
		}
		log.Info("tracking store initialized", nil, map[string]interface{}{
			"backend":  "postgres",
			"endpoint": store.Endpoint(),
		})
		return store, nil

	default:
		return nil, fmt.Errorf("tracking: unknown backend %q", cfg.Backend)
	}
}
