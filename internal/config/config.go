package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the fund refresh tool.
type Config struct {
	// Holdings file and the extra fund codes refreshed alongside holdings
	HoldingsPath string   `mapstructure:"holdings_path"`
	Watchlist    []string `mapstructure:"watchlist"`

	// Base URL for the NAV provider (configurable for testing)
	EastmoneyBaseURL string `mapstructure:"eastmoney_base_url"`

	// Refresh engine tuning
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	BaseDelay     time.Duration `mapstructure:"base_delay"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values.
//
// Recognized environment variables:
//   - HOLDINGS_PATH (defaults to $HOME/.fundrefresh/holdings.json)
//   - EASTMONEY_BASE_URL (optional, defaults to production)
//   - MAX_CONCURRENT, MAX_ATTEMPTS, BASE_DELAY
//   - LOG_LEVEL, LOG_PRETTY
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("holdings_path", filepath.Join(home, ".fundrefresh", "holdings.json"))
	v.SetDefault("eastmoney_base_url", "https://fundmobapi.eastmoney.com")
	v.SetDefault("max_concurrent", 3)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("base_delay", "500ms")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", true)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.fundrefresh")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	v.BindEnv("holdings_path", "HOLDINGS_PATH")
	v.BindEnv("eastmoney_base_url", "EASTMONEY_BASE_URL")
	v.BindEnv("max_concurrent", "MAX_CONCURRENT")
	v.BindEnv("max_attempts", "MAX_ATTEMPTS")
	v.BindEnv("base_delay", "BASE_DELAY")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_pretty", "LOG_PRETTY")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.MaxConcurrent < 1 {
		return nil, fmt.Errorf("max_concurrent must be at least 1, got %d", config.MaxConcurrent)
	}
	if config.MaxAttempts < 1 {
		return nil, fmt.Errorf("max_attempts must be at least 1, got %d", config.MaxAttempts)
	}
	if config.BaseDelay < 0 {
		return nil, fmt.Errorf("base_delay must not be negative, got %s", config.BaseDelay)
	}

	return config, nil
}
