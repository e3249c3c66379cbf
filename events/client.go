package events

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/talenthunt/talenthunt/logger"
)

// RunEvent is the wire payload of a run-completed notification.
type RunEvent struct {
	RunID       string    `json:"run_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Client holds the AMQP connection and a channel with the run-events
// exchange declared.
type Client struct {
	cfg Config
	log *logger.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// NewClient dials RabbitMQ and declares the run-events exchange. It
// returns (nil, nil) when messaging is disabled.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: failed to open channel: %w", err)
	}

	// Durable direct exchange; events must survive broker restarts.
	err = channel.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: failed to declare exchange %q: %w", cfg.Exchange, err)
	}

	log.Info("connected to rabbitmq", nil, map[string]interface{}{
		"exchange":    cfg.Exchange,
		"routing_key": cfg.RoutingKey,
	})

	return &Client{cfg: cfg, log: log, conn: conn, channel: channel}, nil
}

// Close shuts the channel and connection down. Safe to call twice.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return fmt.Errorf("events: failed to close channel: %w", err)
	}
	return c.conn.Close()
}
