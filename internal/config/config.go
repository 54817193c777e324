package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"dev-secret-please-change"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"order-topic"`

	StorageURL    string `envconfig:"STORAGE_URL"`
	StorageKey    string `envconfig:"STORAGE_KEY"`
	StorageBucket string `envconfig:"STORAGE_BUCKET" default:"product-images"`

	// InternationalShippingRate is the flat charge for any non-domestic address.
	InternationalShippingRate float64 `envconfig:"INTERNATIONAL_SHIPPING_RATE" default:"2500"`

	UseEmailReputation bool   `envconfig:"USE_EMAIL_REPUTATION" default:"false"`
	AbstractAPIKey     string `envconfig:"ABSTRACT_EMAIL_API_KEY"`

	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"1"`
	RateLimitBurst     int     `envconfig:"RATE_LIMIT_BURST" default:"3"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Brokers splits KAFKA_BROKERS; an empty value disables event publishing.
func (c *Config) Brokers() []string {
	if strings.TrimSpace(c.KafkaBrokers) == "" {
		return nil
	}
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
