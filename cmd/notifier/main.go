package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"tourism/internal/notifications/repository"
	"tourism/internal/notifications/service"
	"tourism/pkg/config"
	"tourism/pkg/kafka"
	kafka_config "tourism/pkg/kafka/config"
	kafka_middleware "tourism/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadWorker(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg := kafka_config.Load(cfg.Log)
	notifier := service.NewNotifier(repository.NewMongoNotificationRepository(cfg), cfg.Log)

	consumers := make([]*kafka.Consumer, 0, 2)
	for topic, handler := range map[string]kafka.MessageHandler{
		cfg.BookingEventsTopic: notifier.HandleBooking,
		cfg.ReviewEventsTopic:  notifier.HandleReview,
	} {
		consumer, err := kafka.NewConsumer(kafkaCfg, topic, cfg.NotifierGroupID, cfg.EventsDLQTopic, handler, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create consumer", "topic", topic, "error", err)
		}
		if kafkaCfg.EnableMiddleware {
			consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		}
		consumers = append(consumers, consumer)
	}

	cfg.Log.Info("Starting notifier", "group_id", cfg.NotifierGroupID, "consumers", len(consumers))

	var wg sync.WaitGroup
	for _, consumer := range consumers {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				cfg.Log.Error("Consumer stopped", "error", err)
				stop()
			}
		}(consumer)
	}
	wg.Wait()

	for _, consumer := range consumers {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close consumer", "error", err)
		}
	}
	cfg.Log.Info("Notifier stopped")
}
