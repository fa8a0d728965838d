package main

import (
	"context"

	availabilityrepo "tourism/internal/availability/repository"
	"tourism/internal/bookings/handler"
	"tourism/internal/bookings/repository"
	"tourism/internal/bookings/service"
	"tourism/internal/bookings/validator"
	listingsrepo "tourism/internal/listings/repository"
	"tourism/pkg/app"
	"tourism/pkg/config"
	"tourism/pkg/events"
	"tourism/pkg/tracing"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	shutdownTracing, err := tracing.Setup(context.Background(), ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	publisher, err := events.FromConfig(cfg, cfg.BookingEventsTopic, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to set up event publisher", "error", err)
	}

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg, publisher)
	serverApp := app.NewApplication(cfg, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.OnShutdown(func(context.Context) error { return publisher.Close() })
	serverApp.OnShutdown(shutdownTracing)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingService := service.NewBookingService(
		repository.NewMongoBookingRepository(cfg),
		availabilityrepo.NewMongoSlotRepository(cfg),
		listingsrepo.NewMongoTargetRepository(cfg),
		publisher,
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
