// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, int64(5000), cfg.Pricing.FreeShippingThreshold)
	assert.Equal(t, "USD", cfg.Pricing.Currency)
	assert.Equal(t, "cart:snapshot", cfg.Storage.CartSnapshotKey)
	assert.Equal(t, 24*time.Hour, cfg.Storage.SnapshotTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/v2")
	t.Setenv("API_REQUEST_TIMEOUT", "3s")
	t.Setenv("PRICING_FREE_SHIPPING_THRESHOLD", "7500")
	t.Setenv("PRICING_TAX_RATE", "18")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v2", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, int64(7500), cfg.Pricing.FreeShippingThreshold)
	assert.Equal(t, 18.0, cfg.Pricing.TaxRate)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://localhost:8080/api/v1"},
			Redis:   RedisConfig{Enabled: true, Host: "localhost", Port: "6379"},
			Pricing: PricingConfig{FreeShippingThreshold: 5000, TaxRate: 0},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.API.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.API.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Redis.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Redis.Enabled = false
	cfg.Redis.Host = ""
	assert.NoError(t, cfg.Validate(), "redis host optional when disabled")

	cfg = base()
	cfg.Pricing.FreeShippingThreshold = -1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Pricing.TaxRate = 101
	assert.Error(t, cfg.Validate())
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "localhost", Port: "6380"}}
	assert.Equal(t, "localhost:6380", cfg.GetRedisAddr())
}
