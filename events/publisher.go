package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits run-completed events to the configured exchange.
type Publisher struct {
	client *Client
}

// NewPublisher wraps an open client for publishing.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishRunCompleted notifies consumers that a training run finished and
// its model is resolvable from the tracking store.
func (p *Publisher) PublishRunCompleted(ctx context.Context, runID string) error {
	body, err := json.Marshal(RunEvent{
		RunID:       runID,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("events: failed to marshal run event: %w", err)
	}

	c := p.client
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("events: client is closed")
	}

	err = c.channel.PublishWithContext(ctx,
		c.cfg.Exchange,
		c.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("events: failed to publish run event: %w", err)
	}

	c.log.Info("run-completed event published", nil, map[string]interface{}{"run_id": runID})
	return nil
}
