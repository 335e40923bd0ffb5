package config

import (
	"time"

	"go-signalist/pkg/config"
)

// Notifier holds notifier-specific configuration.
type Notifier struct {
	StreamReadTimeout time.Duration `mapstructure:"stream_read_timeout"`
	DigestCron        string        `mapstructure:"digest_cron"`
	// ResendCooldown suppresses repeat price-alert emails for the same alert
	// within the window. Zero keeps the always-resend behavior.
	ResendCooldown    time.Duration `mapstructure:"resend_cooldown"`
	StepMaxAttempts   int           `mapstructure:"step_max_attempts"`
	StepRetryInterval time.Duration `mapstructure:"step_retry_interval"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Config holds the full configuration for the notifier service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	Finnhub  config.Finnhub  `mapstructure:"finnhub"`
	SMTP     config.SMTP     `mapstructure:"smtp"`
	Gemini   Gemini          `mapstructure:"gemini"`
	Notifier Notifier        `mapstructure:"notifier"`
}

// Load loads the notifier configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
