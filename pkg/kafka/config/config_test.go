package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Brokers:                   []string{"localhost:9092"},
		ProducerMaxAttempts:       DefaultProducerMaxAttempts,
		ProducerBatchTimeout:      DefaultProducerBatchTimeout,
		ProducerRequireAcks:       DefaultProducerRequireAcks,
		ProducerCompression:       DefaultProducerCompression,
		ConsumerStartOffset:       DefaultConsumerStartOffset,
		ConsumerMinBytes:          DefaultConsumerMinBytes,
		ConsumerMaxBytes:          DefaultConsumerMaxBytes,
		ConsumerMaxWait:           DefaultConsumerMaxWait,
		ConsumerCommitInterval:    DefaultConsumerCommitInterval,
		ConsumerHeartbeatInterval: DefaultConsumerHeartbeatInterval,
		ConsumerSessionTimeout:    DefaultConsumerSessionTimeout,
		ConsumerRebalanceTimeout:  DefaultConsumerRebalanceTimeout,
		ConsumerMaxRetries:        DefaultConsumerMaxRetries,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no brokers", func(c *Config) { c.Brokers = nil }, "At least one Kafka broker"},
		{"blank broker", func(c *Config) { c.Brokers = []string{"a:9092", ""} }, "Broker 1 cannot be empty"},
		{"bad compression", func(c *Config) { c.ProducerCompression = "brotli" }, "ProducerCompression"},
		{"bad acks", func(c *Config) { c.ProducerRequireAcks = 2 }, "ProducerRequireAcks"},
		{"bad offset", func(c *Config) { c.ConsumerStartOffset = 5 }, "ConsumerStartOffset"},
		{"zero wait", func(c *Config) { c.ConsumerMaxWait = 0 }, "ConsumerMaxWait"},
		{"negative retries", func(c *Config) { c.ConsumerMaxRetries = -1 }, "ConsumerMaxRetries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " broker-1:9092 , broker-2:9092 ")
	t.Setenv(EnvKafkaConsumerMaxRetries, "7")
	t.Setenv(EnvKafkaProducerBatchTimeout, "50ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "broker-2:9092" {
		t.Errorf("expected trimmed brokers, got %v", cfg.Brokers)
	}
	if cfg.ConsumerMaxRetries != 7 {
		t.Errorf("expected 7 retries, got %d", cfg.ConsumerMaxRetries)
	}
	if cfg.ProducerBatchTimeout != 50*time.Millisecond {
		t.Errorf("expected 50ms batch timeout, got %s", cfg.ProducerBatchTimeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvKafkaProducerCompression, "brotli")

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}
