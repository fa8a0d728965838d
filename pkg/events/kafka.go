package events

import (
	"context"

	"tourism/pkg/kafka"
	"tourism/pkg/logger"
)

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer producer
	source   string
	log      *logger.Logger
}

// NewKafkaPublisher keys booking events by booking id and review events by
// target id so consumers see each entity's events in order.
func NewKafkaPublisher(p *kafka.Producer, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: p, source: source, log: log}
}

func (p *kafkaPublisher) PublishBooking(ctx context.Context, event BookingEvent) {
	p.publish(ctx, event.BookingID, event.Type, event)
}

func (p *kafkaPublisher) PublishReview(ctx context.Context, event ReviewEvent) {
	p.publish(ctx, event.TargetID, event.Type, event)
}

func (p *kafkaPublisher) publish(ctx context.Context, key, eventType string, payload any) {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(logger.RequestID(ctx)).
		Build()
	if err != nil {
		p.log.Error("Failed to build event", "event_type", eventType, "key", key, "error", err)
		return
	}

	// The request context may be cancelled as soon as the response is written.
	if err := p.producer.Publish(context.WithoutCancel(ctx), msg); err != nil {
		p.log.Error("Failed to publish event",
			"request_id", logger.RequestID(ctx),
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
