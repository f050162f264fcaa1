package messaging

import (
	"context"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ service.EventPublisher = (*LogPublisher)(nil)

// LogPublisher writes events to the structured log. It never fails.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log.WithComponent("event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	p.logger.Info(ctx, "Domain event",
		logger.String("type", event.Type),
		logger.String("key", event.Key),
		logger.Any("payload", event.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// NewPublisher picks Kafka when brokers are configured and the log otherwise.
func NewPublisher(cfg *config.KafkaConfig, log logger.Logger) service.EventPublisher {
	if cfg != nil && cfg.Enabled() {
		return NewKafkaPublisher(cfg, log)
	}
	return NewLogPublisher(log)
}
