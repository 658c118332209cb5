package config

import (
	"fmt"
	"hotelres/pkg/logger"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var roomLayoutRegex = regexp.MustCompile(`^\s*[^:,]+:\d+(-\d+)?\s*(,\s*[^:,]+:\d+(-\d+)?\s*)*$`)

type Config struct {
	ServiceName string

	Port string

	RoomLayout        string
	ReservationIDBase int64

	OperatorUsername string
	OperatorPassword string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	EventsEnabled             bool
	ReservationEventsTopic    string
	ReservationEventsDLQTopic string
	HousekeepingGroupID       string

	OTLPEndpoint string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		ServiceName: serviceName,

		Port: getEnvStr(EnvPort, DefaultPort),

		RoomLayout:        getEnvStr(EnvRoomLayout, DefaultRoomLayout),
		ReservationIDBase: int64(getEnvNum(EnvReservationIDBase, DefaultReservationIDBase)),

		OperatorUsername: getEnvStr(EnvOperatorUsername, ""),
		OperatorPassword: getEnvStr(EnvOperatorPassword, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		EventsEnabled:             getEnvBool(EnvEventsEnabled, DefaultEventsEnabled),
		ReservationEventsTopic:    getEnvStr(EnvReservationEventsTopic, DefaultReservationEventsTopic),
		ReservationEventsDLQTopic: getEnvStr(EnvReservationEventsDLQTopic, DefaultReservationEventsDLQTopic),
		HousekeepingGroupID:       getEnvStr(EnvHousekeepingGroupID, DefaultHousekeepingGroupID),

		OTLPEndpoint: getEnvStr(EnvOTLPEndpoint, ""),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// OperatorAuthEnabled reports whether the single operator credential is configured.
func (cfg *Config) OperatorAuthEnabled() bool {
	return cfg.OperatorUsername != "" && cfg.OperatorPassword != ""
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if !roomLayoutRegex.MatchString(cfg.RoomLayout) {
		errors = append(errors, fmt.Sprintf("RoomLayout must look like 'Single:101-105,Suite:301', got: %s", cfg.RoomLayout))
	}
	if cfg.ReservationIDBase < 1 {
		errors = append(errors, fmt.Sprintf("ReservationIDBase must be positive, got: %d", cfg.ReservationIDBase))
	}

	if (cfg.OperatorUsername == "") != (cfg.OperatorPassword == "") {
		errors = append(errors, "OperatorUsername and OperatorPassword must be set together")
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.EventsEnabled && cfg.ReservationEventsTopic == "" {
		errors = append(errors, "ReservationEventsTopic cannot be empty when events are enabled")
	}
	if cfg.ReservationEventsTopic != "" && cfg.ReservationEventsTopic == cfg.ReservationEventsDLQTopic {
		errors = append(errors, "ReservationEventsDLQTopic must differ from ReservationEventsTopic")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"room_layout", cfg.RoomLayout,
		"reservation_id_base", cfg.ReservationIDBase,
		"operator_auth_enabled", cfg.OperatorAuthEnabled(),
		"operator_username", redact(cfg.OperatorUsername),
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"events_enabled", cfg.EventsEnabled,
		"reservation_events_topic", cfg.ReservationEventsTopic,
		"reservation_events_dlq_topic", cfg.ReservationEventsDLQTopic,
		"housekeeping_group_id", cfg.HousekeepingGroupID,
		"tracing_enabled", cfg.OTLPEndpoint != "",
	)
}

func redact(s string) string {
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}
	return s[:1] + strings.Repeat("*", len(s)-2) + s[len(s)-1:]
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
