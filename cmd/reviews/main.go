package main

import (
	"context"

	bookingsrepo "tourism/internal/bookings/repository"
	listingsrepo "tourism/internal/listings/repository"
	"tourism/internal/reviews/handler"
	"tourism/internal/reviews/repository"
	"tourism/internal/reviews/service"
	"tourism/internal/reviews/validator"
	"tourism/pkg/app"
	"tourism/pkg/config"
	"tourism/pkg/events"
	"tourism/pkg/tracing"
)

const ServiceName = "reviews"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	shutdownTracing, err := tracing.Setup(context.Background(), ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	publisher, err := events.FromConfig(cfg, cfg.ReviewEventsTopic, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to set up event publisher", "error", err)
	}

	cfg.Log.Info("Starting Reviews service")
	reviewService := initServices(cfg, publisher)
	serverApp := app.NewApplication(cfg, handler.NewReviewHandler(reviewService, cfg.Log))
	serverApp.OnShutdown(func(context.Context) error { return publisher.Close() })
	serverApp.OnShutdown(shutdownTracing)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.ReviewService {
	reviewService := service.NewReviewService(
		repository.NewMongoReviewRepository(cfg),
		listingsrepo.NewMongoTargetRepository(cfg),
		bookingsrepo.NewMongoBookingRepository(cfg),
		publisher,
		validator.NewReviewValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Review service initialized", "database", cfg.MongoDatabaseName)
	return reviewService
}
