package main

import (
	"context"

	"tourism/internal/listings/handler"
	"tourism/internal/listings/repository"
	"tourism/internal/listings/service"
	"tourism/internal/listings/validator"
	"tourism/pkg/app"
	"tourism/pkg/config"
	"tourism/pkg/tracing"
)

const ServiceName = "listings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	shutdownTracing, err := tracing.Setup(context.Background(), ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	cfg.Log.Info("Starting Listings service")
	guideService, businessService := initServices(cfg)
	serverApp := app.NewApplication(cfg,
		handler.NewGuideHandler(guideService, cfg.Log),
		handler.NewBusinessHandler(businessService, cfg.Log),
	)
	serverApp.OnShutdown(shutdownTracing)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.GuideService, service.BusinessService) {
	listingValidator := validator.NewListingValidator(cfg.Log)
	guideService := service.NewGuideService(
		repository.NewMongoGuideRepository(cfg),
		listingValidator,
		cfg,
	)
	businessService := service.NewBusinessService(
		repository.NewMongoBusinessRepository(cfg),
		listingValidator,
		cfg,
	)

	cfg.Log.Info("Listing services initialized", "database", cfg.MongoDatabaseName)
	return guideService, businessService
}
