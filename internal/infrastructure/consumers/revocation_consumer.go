// Package consumers contains Kafka consumers for background processing.
package consumers

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/logger"
)

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RevocationConsumer applies token revocations announced by other instances
// to the local revocation list. Every instance has its own consumer group so
// each one sees every revocation.
type RevocationConsumer struct {
	reader messageReader
	local  service.TokenRevocationList
	now    func() time.Time
	logger logger.Logger
}

// NewRevocationConsumer reads the event topic from the newest offset.
func NewRevocationConsumer(cfg *config.KafkaConfig, local service.TokenRevocationList, log logger.Logger) *RevocationConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        "acadmin-revocation-" + uuid.NewString(),
		StartOffset:    kafka.LastOffset,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})
	return newRevocationConsumer(reader, local, log)
}

func newRevocationConsumer(reader messageReader, local service.TokenRevocationList, log logger.Logger) *RevocationConsumer {
	return &RevocationConsumer{
		reader: reader,
		local:  local,
		now:    time.Now,
		logger: log.WithComponent("revocation_consumer"),
	}
}

// Run consumes until ctx is done. It blocks; run it in a goroutine.
func (c *RevocationConsumer) Run(ctx context.Context) {
	c.logger.Info(ctx, "Starting revocation consumer")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || goerrors.Is(err, context.Canceled) {
				c.logger.Info(context.Background(), "Revocation consumer stopped")
				return
			}
			c.logger.Error(ctx, "Failed to fetch message from Kafka", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			// Not committed, so the message is redelivered after a restart.
			c.logger.Error(ctx, "Failed to apply revocation", err, logger.Int64("offset", msg.Offset))
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Warn(ctx, "Failed to commit message", logger.String("error", err.Error()))
		}
	}
}

// handle returns an error only for failures worth retrying. Other event types
// and malformed messages are skipped.
func (c *RevocationConsumer) handle(ctx context.Context, msg kafka.Message) error {
	if eventType(msg) != constants.EventTokenRevoked {
		return nil
	}

	var event struct {
		Payload models.TokenRevokedPayload `json:"payload"`
	}
	if err := json.Unmarshal(msg.Value, &event); err != nil || event.Payload.JTI == "" {
		c.logger.Warn(ctx, "Skipping malformed revocation event", logger.String("value", string(msg.Value)))
		return nil
	}

	ttl := event.Payload.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		c.logger.Debug(ctx, "Skipping expired revocation", logger.String("jti", event.Payload.JTI))
		return nil
	}
	if err := c.local.Revoke(ctx, event.Payload.JTI, ttl); err != nil {
		return fmt.Errorf("revoke %s: %w", event.Payload.JTI, err)
	}
	c.logger.Debug(ctx, "Applied remote revocation", logger.String("jti", event.Payload.JTI), logger.Duration("ttl", ttl))
	return nil
}

func eventType(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

// Close releases the Kafka reader.
func (c *RevocationConsumer) Close() error {
	return c.reader.Close()
}
