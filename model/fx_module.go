package model

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the model manager and registers its lifecycle.
var FXModule = fx.Module("model",
	fx.Provide(
		NewConfig,
		NewManager,
	),
	fx.Invoke(RegisterManagerLifecycle),
)

// RegisterManagerLifecycle releases the encode worker pool on shutdown.
func RegisterManagerLifecycle(lc fx.Lifecycle, manager *Manager) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return manager.Close()
		},
	})
}
