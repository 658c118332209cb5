package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRoomLayout        = "ROOM_LAYOUT"
	EnvReservationIDBase = "RESERVATION_ID_BASE"

	EnvOperatorUsername = "OPERATOR_USERNAME"
	EnvOperatorPassword = "OPERATOR_PASSWORD"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvEventsEnabled             = "EVENTS_ENABLED"
	EnvReservationEventsTopic    = "RESERVATION_EVENTS_TOPIC"
	EnvReservationEventsDLQTopic = "RESERVATION_EVENTS_DLQ_TOPIC"
	EnvHousekeepingGroupID       = "HOUSEKEEPING_GROUP_ID"

	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)
