package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/model"
)

// FXModule provides the HTTP server and runs it for the application's
// lifetime. The current model is loaded once before the listener starts.
var FXModule = fx.Module("api",
	fx.Provide(
		NewConfig,
		NewServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle loads the latest model and starts the listener on
// startup, then shuts the server down gracefully on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, manager *model.Manager, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			manager.LoadLatest(ctx)

			go func() {
				if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("api server failed", err, nil)
				}
			}()
			log.Info("api server listening", nil, map[string]interface{}{"address": s.HTTP.Addr})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.HTTP.Shutdown(ctx)
		},
	})
}
