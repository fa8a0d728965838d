package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tourism"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultEnvFile   = ".env"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultTimeZone          = "UTC"
	DefaultSlotLockTTL       = 10 * time.Second
	DefaultMaxBatchDays      = 366
	DefaultMaxBatchTemplates = 24
	DefaultMaxBulkBookings   = 100

	DefaultEventsEnabled      = false
	DefaultBookingEventsTopic = "booking-events"
	DefaultReviewEventsTopic  = "review-events"
	DefaultEventsDLQTopic     = "events-dlq"
	DefaultNotifierGroupID    = "notifier"

	DefaultPaginationLimit = 100
	FallbackPageSize       = 20
)
