package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// RefreshPolicy decides whether a snapshot with empty failed slots still
// counts as fresh for the rest of the day.
type RefreshPolicy string

const (
	// PolicyBestEffort keeps whatever the barrier produced and never
	// re-blocks the user until the next calendar day.
	PolicyBestEffort RefreshPolicy = "best-effort"
	// PolicyRequireComplete treats an incomplete snapshot as stale so the
	// next trigger retries the failed slots.
	PolicyRequireComplete RefreshPolicy = "require-complete"
)

// Config holds the configuration for the daybook service.
// Environment variables are parsed from the DAYBOOK_ prefix.
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SQLite database file for entries and insight snapshots.
	DBPath string `envconfig:"DB_PATH" default:"daybook.db"`

	// Chat completion endpoint.
	OpenAIBaseURL  string  `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	OpenAIAPIKey   string  `envconfig:"OPENAI_API_KEY" default:""`
	Model          string  `envconfig:"MODEL" default:"gpt-4"`
	Temperature    float64 `envconfig:"TEMPERATURE" default:"0.7"`
	RequestTimeout int     `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"30"`

	// Daily refresh behaviour.
	RefreshPolicy RefreshPolicy `envconfig:"REFRESH_POLICY" default:"best-effort"`
	ReminderHour  int           `envconfig:"REMINDER_HOUR" default:"22"`

	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// Validate checks derived constraints after env parsing.
func (c *Config) Validate() error {
	switch c.RefreshPolicy {
	case PolicyBestEffort, PolicyRequireComplete:
	default:
		return fmt.Errorf("unsupported DAYBOOK_REFRESH_POLICY: %s", c.RefreshPolicy)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("DAYBOOK_TEMPERATURE must be in [0,2], got %v", c.Temperature)
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		return fmt.Errorf("DAYBOOK_REMINDER_HOUR must be in [0,23], got %d", c.ReminderHour)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("DAYBOOK_REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeout)
	}
	return nil
}

// New creates a Config from DAYBOOK_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DAYBOOK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Int("port", cfg.HTTPPort).
		Str("db_path", cfg.DBPath).
		Str("model", cfg.Model).
		Float64("temperature", cfg.Temperature).
		Str("refresh_policy", string(cfg.RefreshPolicy)).
		Str("api_key_present", func() string {
			if cfg.OpenAIAPIKey != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config suitable for unit tests.
func NewForTesting() *Config {
	return &Config{
		HTTPPort:                  8080,
		DBPath:                    ":memory:",
		OpenAIBaseURL:             "http://localhost:0",
		OpenAIAPIKey:              "test-key",
		Model:                     "gpt-4",
		Temperature:               0.7,
		RequestTimeout:            5,
		RefreshPolicy:             PolicyBestEffort,
		ReminderHour:              22,
		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 5,
	}
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
