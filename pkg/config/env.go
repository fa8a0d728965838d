package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisURL = "REDIS_URL"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
	EnvEnvFile   = "ENV_FILE"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWKSURL   = "JWKS_URL"
	EnvJWTIssuer = "JWT_ISSUER"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvTimeZone          = "TIME_ZONE"
	EnvSlotLockTTL       = "SLOT_LOCK_TTL"
	EnvMaxBatchDays      = "MAX_BATCH_DAYS"
	EnvMaxBatchTemplates = "MAX_BATCH_TEMPLATES"
	EnvMaxBulkBookings   = "MAX_BULK_BOOKINGS"

	EnvEventsEnabled      = "EVENTS_ENABLED"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
	EnvReviewEventsTopic  = "REVIEW_EVENTS_TOPIC"
	EnvEventsDLQTopic     = "EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID    = "NOTIFIER_GROUP_ID"

	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)
