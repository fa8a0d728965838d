package events

import (
	"fmt"

	"tourism/pkg/config"
	"tourism/pkg/kafka"
	kafka_config "tourism/pkg/kafka/config"
	kafka_middleware "tourism/pkg/kafka/middleware"
)

// FromConfig returns a Kafka publisher on topic when events are enabled and
// a no-op publisher otherwise.
func FromConfig(cfg *config.Config, topic, source string) (Publisher, error) {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Domain events disabled")
		return NewNopPublisher(), nil
	}

	kafkaCfg := kafka_config.Load(cfg.Log)
	producer, err := kafka.NewProducer(kafkaCfg, topic, cfg.EventsDLQTopic, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Domain events enabled", "topic", topic, "brokers", kafkaCfg.Brokers)
	return NewKafkaPublisher(producer, source, cfg.Log), nil
}
