// Package config loads the storefront configuration from environment
// variables (optionally seeded from a .env file) via viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// ListenAddr is the storefront's own HTTP listen address.
	ListenAddr string `mapstructure:"LISTEN_ADDR"`

	// PlatformBaseURL is the base URL of the food-ordering platform API.
	PlatformBaseURL string `mapstructure:"PLATFORM_BASE_URL"`

	// PlatformTimeout bounds every platform API round-trip.
	PlatformTimeout time.Duration `mapstructure:"PLATFORM_TIMEOUT"`

	// RedisAddr is the host:port of the Redis that mirrors cart/session state.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// CheckoutLogPath is the SQLite file for the checkout funnel log.
	// Empty disables funnel auditing.
	CheckoutLogPath string `mapstructure:"CHECKOUT_LOG_PATH"`

	// RequireDeliveryAddress makes order submission reject a blank address.
	RequireDeliveryAddress bool `mapstructure:"REQUIRE_DELIVERY_ADDRESS"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present, env vars win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine; env vars are enough

	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("PLATFORM_BASE_URL", "") // registered so AutomaticEnv can fill it; no usable default
	v.SetDefault("PLATFORM_TIMEOUT", "15s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CHECKOUT_LOG_PATH", "./data/checkout.db")
	v.SetDefault("REQUIRE_DELIVERY_ADDRESS", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.PlatformBaseURL == "" {
		return nil, fmt.Errorf("config: PLATFORM_BASE_URL must be set")
	}
	return &cfg, nil
}
