package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_API_SECRET", "secret")
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_URL", "https://connector.example.com/")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "")
	t.Setenv("SCOPES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "https://connector.example.com", cfg.AppURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientTimeout)
	assert.Contains(t, cfg.Scopes, "write_orders")
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_API_SECRET", "secret")
	t.Setenv("ENCRYPTION_KEY", "k")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "5s")
	t.Setenv("SHOPIFY_RATE_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 5*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, float64(2), cfg.ShopifyRateLimit, "invalid values fall back to the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "complete",
			config: Config{ShopifyAPIKey: "k", ShopifyAPISecret: "s", EncryptionKey: "e"},
		},
		{
			name:    "missing api key",
			config:  Config{ShopifyAPISecret: "s", EncryptionKey: "e"},
			wantErr: "SHOPIFY_API_KEY is required",
		},
		{
			name:    "missing encryption key",
			config:  Config{ShopifyAPIKey: "k", ShopifyAPISecret: "s"},
			wantErr: "ENCRYPTION_KEY is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
