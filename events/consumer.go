package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/model"
)

// Consumer reloads the serving model whenever a run-completed event
// arrives.
type Consumer struct {
	client  *Client
	manager *model.Manager
	log     *logger.Logger

	cancel context.CancelFunc
	done   sync.WaitGroup
}

// NewConsumer wraps an open client for consuming reload events.
func NewConsumer(client *Client, manager *model.Manager, log *logger.Logger) *Consumer {
	return &Consumer{client: client, manager: manager, log: log}
}

// Start binds the reload queue and consumes events until Stop is called or
// the channel closes.
func (c *Consumer) Start() error {
	cl := c.client
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return fmt.Errorf("events: client is closed")
	}

	// Durable queue; reload events queued while serving is down are
	// delivered on reconnect.
	_, err := cl.channel.QueueDeclare(cl.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("events: failed to declare queue %q: %w", cl.cfg.Queue, err)
	}
	if err := cl.channel.QueueBind(cl.cfg.Queue, cl.cfg.RoutingKey, cl.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("events: failed to bind queue %q: %w", cl.cfg.Queue, err)
	}

	deliveries, err := cl.channel.Consume(cl.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("events: failed to start consuming: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done.Add(1)
	go c.run(ctx, deliveries)
	return nil
}

func (c *Consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.done.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				c.log.Warn("event channel closed, stopping model reloads", nil, nil)
				return
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var event RunEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.log.Warn("discarding malformed run event", err, nil)
		// Malformed payloads never become parseable; do not requeue.
		_ = delivery.Nack(false, false)
		return
	}

	c.manager.LoadLatest(ctx)
	c.log.Info("model reloaded after training run", nil, map[string]interface{}{"run_id": event.RunID})
	_ = delivery.Ack(false)
}

// Stop cancels the consume loop and waits for it to drain.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.done.Wait()
}
