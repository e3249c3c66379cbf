package events

import (
	"context"

	"go.uber.org/fx"

	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/model"
	"github.com/talenthunt/talenthunt/pipeline"
)

// FXModule provides the messaging client, exposes the publisher to the
// pipeline, and runs the reload consumer for the application's lifetime.
// With messaging disabled every provider yields nil and the consumer is
// not started.
var FXModule = fx.Module("events",
	fx.Provide(
		NewConfig,
		NewClient,
		AsRunPublisher,
	),
	fx.Invoke(RegisterConsumerLifecycle),
)

// AsRunPublisher adapts the publisher to the pipeline's interface. A
// disabled client yields a nil publisher, which the pipeline treats as
// absent.
func AsRunPublisher(client *Client) pipeline.RunPublisher {
	if client == nil {
		return nil
	}
	return NewPublisher(client)
}

// RegisterConsumerLifecycle starts the reload consumer on startup and
// drains it on stop.
func RegisterConsumerLifecycle(lc fx.Lifecycle, client *Client, manager *model.Manager, log *logger.Logger) {
	if client == nil {
		return
	}

	consumer := NewConsumer(client, manager, log)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return consumer.Start()
		},
		OnStop: func(ctx context.Context) error {
			consumer.Stop()
			return client.Close()
		},
	})
}
