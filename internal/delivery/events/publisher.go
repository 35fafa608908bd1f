package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/SaiDecoratives/templehub-catalog/internal/config"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream for catalog events
	StreamName = "CATALOG"

	// StreamSubjects defines the subjects this stream listens to
	StreamSubjects = "catalog.events"
)

// Publisher handles publishing catalog events to NATS JetStream
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logger.Logger
}

// NewPublisher creates a new NATS JetStream publisher and ensures the
// catalog stream exists.
func NewPublisher(cfg *config.Config, log *logger.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &Publisher{
		nc:     nc,
		js:     js,
		logger: log,
	}

	if err := p.ensureStream(); err != nil {
		nc.Close()
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"url": cfg.NATS.URL,
	}).Info("Connected to NATS JetStream")

	return p, nil
}

// ensureStream creates the catalog stream if it does not exist yet. Catalog
// events are notifications for downstream consumers (search indexers, feeds),
// so stale messages age out after a day.
func (p *Publisher) ensureStream() error {
	_, err := p.js.StreamInfo(StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{StreamSubjects},
		Retention:   nats.LimitsPolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      24 * time.Hour,
		Discard:     nats.DiscardOld,
		Description: "Catalog change events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"stream":   StreamName,
		"subjects": StreamSubjects,
	}).Info("JetStream stream created")

	return nil
}

// Publish publishes a message to a NATS JetStream subject
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	pubAck, err := p.js.Publish(subject, data, nats.Context(ctx))
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"subject": subject,
		}).Error("Failed to publish message to JetStream", err)
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"subject":  subject,
		"stream":   pubAck.Stream,
		"sequence": pubAck.Sequence,
	}).Debug("Published message to JetStream")

	return nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
