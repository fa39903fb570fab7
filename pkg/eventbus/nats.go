package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aidmatch/trust-engine/pkg/logger"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher sends domain events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

// NATSPublisher publishes JSON-encoded events on a NATS connection
type NATSPublisher struct {
	conn *nats.Conn
}

// Connect opens a NATS connection for publishing
func Connect(url, clientName string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish encodes event as JSON and publishes it on subject
func (p *NATSPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NoopPublisher discards every event; used when publishing is disabled
type NoopPublisher struct{}

// Publish implements Publisher
func (NoopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}
