package config

import "time"

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRoomLayout        = "Single:101-105,Double:201-206,Suite:301-303"
	DefaultReservationIDBase = 1001

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultEventsEnabled             = false
	DefaultReservationEventsTopic    = "hotel.reservations"
	DefaultReservationEventsDLQTopic = "hotel.reservations.dlq"
	DefaultHousekeepingGroupID       = "housekeeping"

	DefaultPageSize        = 20
	DefaultPaginationLimit = 100
)
