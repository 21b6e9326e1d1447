package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	MiddlewaresFile    string        `mapstructure:"middlewares_file"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	CacheType            string        `mapstructure:"cache_type"`
	BBoltPath            string        `mapstructure:"bbolt_path"`
	CacheTTLSeconds      int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds  int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL             time.Duration `mapstructure:"-"`
	CacheCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "httpwire")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("middlewares_file", "./configs/middlewares.yaml")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("cache_type", "none")
	v.SetDefault("bbolt_path", "./data/cache.db")
	v.SetDefault("cache_ttl_seconds", int64((15*time.Minute)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64(time.Hour/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	cfg.CacheCleanupInterval = time.Duration(cfg.CacheCleanupSeconds) * time.Second

	return &cfg, nil
}
