package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the connector
type Config struct {
	Port   string
	AppURL string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Redis (OAuth state)
	RedisURL string

	// Kafka (optional activity stream)
	KafkaBrokers       []string
	KafkaActivityTopic string

	// Shopify app
	ShopifyAPIKey     string
	ShopifyAPISecret  string
	ShopifyAPIVersion string
	Scopes            []string

	// Secrets at rest
	EncryptionKey string

	// Outbound calls
	HTTPClientTimeout time.Duration
	ShopifyRateLimit  float64
	VTEXRateLimit     float64

	LogLevel string
}

// Load reads configuration from the environment, loading a .env file first when present
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8081"),
		AppURL:             strings.TrimSuffix(getEnv("APP_URL", "http://localhost:8081"), "/"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "vtex_connector"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaActivityTopic: getEnv("KAFKA_ACTIVITY_TOPIC", "vtex-connector.activity"),
		ShopifyAPIKey:      getEnv("SHOPIFY_API_KEY", ""),
		ShopifyAPISecret:   getEnv("SHOPIFY_API_SECRET", ""),
		ShopifyAPIVersion:  getEnv("SHOPIFY_API_VERSION", "2024-01"),
		Scopes:             splitList(getEnv("SCOPES", "read_products,write_products,read_orders,write_orders,read_shipping")),
		EncryptionKey:      getEnv("ENCRYPTION_KEY", ""),
		HTTPClientTimeout:  getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		ShopifyRateLimit:   getEnvAsFloat("SHOPIFY_RATE_LIMIT", 2),
		VTEXRateLimit:      getEnvAsFloat("VTEX_RATE_LIMIT", 10),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	return cfg, cfg.Validate()
}

// Validate checks that the keys without a usable default are set
func (c *Config) Validate() error {
	var errs []error
	if c.ShopifyAPIKey == "" {
		errs = append(errs, errors.New("SHOPIFY_API_KEY is required"))
	}
	if c.ShopifyAPISecret == "" {
		errs = append(errs, errors.New("SHOPIFY_API_SECRET is required"))
	}
	if c.EncryptionKey == "" {
		errs = append(errs, errors.New("ENCRYPTION_KEY is required"))
	}
	return errors.Join(errs...)
}

// KafkaEnabled reports whether activity entries should be mirrored to Kafka
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
