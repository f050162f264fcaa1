// Package messaging publishes domain events to Kafka, or to the log when no
// broker is configured.
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ service.EventPublisher = (*KafkaPublisher)(nil)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each event as one JSON message keyed by the event key,
// so all events about one entity land on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger logger.Logger
}

// NewKafkaPublisher creates a publisher for cfg.Topic.
func NewKafkaPublisher(cfg *config.KafkaConfig, log logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
		BatchTimeout: 50 * time.Millisecond,
	}
	return newKafkaPublisher(writer, cfg.Topic, log)
}

func newKafkaPublisher(writer messageWriter, topic string, log logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic, logger: log.WithComponent("kafka_publisher")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "Failed to marshal domain event", err, logger.String("type", event.Type))
		return errors.ErrInternal("failed to encode event").WithCause(err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "Failed to write event to Kafka", err,
			logger.String("topic", p.topic),
			logger.String("type", event.Type),
		)
		return errors.ErrServiceUnavailable("event broker is unavailable").WithCause(err)
	}
	p.logger.Debug(ctx, "Event published",
		logger.String("topic", p.topic),
		logger.String("type", event.Type),
		logger.String("key", event.Key),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
