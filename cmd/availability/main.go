package main

import (
	"context"

	"tourism/internal/availability/handler"
	"tourism/internal/availability/repository"
	"tourism/internal/availability/service"
	"tourism/internal/availability/validator"
	listingsrepo "tourism/internal/listings/repository"
	"tourism/pkg/app"
	"tourism/pkg/config"
	"tourism/pkg/tracing"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	shutdownTracing, err := tracing.Setup(context.Background(), ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg, handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.OnShutdown(shutdownTracing)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	availabilityService := service.NewAvailabilityService(
		repository.NewMongoSlotRepository(cfg),
		repository.NewMongoSlotLockRepository(cfg),
		listingsrepo.NewMongoTargetRepository(cfg),
		validator.NewSlotValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Availability service initialized",
		"database", cfg.MongoDatabaseName,
		"slot_lock_ttl", cfg.SlotLockTTL,
		"max_batch_days", cfg.MaxBatchDays,
	)
	return availabilityService
}
