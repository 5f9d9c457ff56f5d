// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN for the license store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// LicenseSecret is the shared secret mixed into verdict signatures. Required;
	// a missing secret is a startup failure, never a runtime one.
	LicenseSecret string `mapstructure:"LICENSE_SECRET"`
	// AdminKey is the plaintext admin credential checked on admin routes. Ignored
	// when AdminKeyHash is set. Intended for local development.
	AdminKey string `mapstructure:"ADMIN_KEY"`
	// AdminKeyHash is a bcrypt hash of the admin credential (see cmd/adminkey).
	// Preferred over ADMIN_KEY outside development.
	AdminKeyHash string `mapstructure:"ADMIN_KEY_HASH"`
	// BcryptCost is the bcrypt cost factor (4–31) used by cmd/adminkey; default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// RateLimitMax is the number of verify requests admitted per caller per window; default 30.
	RateLimitMax int `mapstructure:"RATE_LIMIT_MAX"`
	// RateLimitWindowSeconds is the fixed rate-limit window length in seconds; default 60.
	RateLimitWindowSeconds int `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`
	// Env is the application environment (e.g. "development", "production"). A plaintext
	// ADMIN_KEY with no ADMIN_KEY_HASH is rejected at startup when Env is production.
	Env string `mapstructure:"APP_ENV"`

	// OTelEndpoint is the OTLP gRPC collector endpoint (e.g. http://localhost:4317).
	// Empty disables OTel export.
	OTelEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTelInsecure forces plaintext OTLP export even for https endpoints
	// (standard OTEL_EXPORTER_OTLP_INSECURE behavior).
	OTelInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// Events (optional). When Kafka brokers are set, the server emits license events to Kafka.
	// EventsKafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	EventsKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsKafkaTopic is the Kafka topic for license events (default lcp-events).
	EventsKafkaTopic string `mapstructure:"EVENTS_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the event worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the event worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("LICENSE_SECRET", "")
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("ADMIN_KEY_HASH", "")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("RATE_LIMIT_MAX", 30)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("EVENTS_KAFKA_TOPIC", "lcp-events")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "lcp-events-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.LicenseSecret == "" {
		return nil, errors.New("config: LICENSE_SECRET must be set")
	}

	if cfg.Env == "production" && cfg.AdminKeyHash == "" && cfg.AdminKey != "" {
		return nil, errors.New("config: set ADMIN_KEY_HASH instead of ADMIN_KEY when APP_ENV=production")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.RateLimitMax <= 0 {
		return nil, errors.New("config: RATE_LIMIT_MAX must be positive")
	}
	if cfg.RateLimitWindowSeconds <= 0 {
		return nil, errors.New("config: RATE_LIMIT_WINDOW_SECONDS must be positive")
	}

	return &cfg, nil
}

// RateLimitWindow returns the rate-limit window as a time.Duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// EventsKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if the event pipeline is enabled (non-empty list) and to create the producer.
func (c *Config) EventsKafkaBrokersList() []string {
	if c == nil || c.EventsKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.EventsKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
