package config

import (
	"os"
	"strconv"
	"time"

	"divlab/internal/errors"
)

// Config represents the complete harness configuration
type Config struct {
	Collaborator CollaboratorConfig
	Settlement   SettlementConfig
	Battery      BatteryConfig
}

// CollaboratorConfig holds the remote service endpoint settings
type CollaboratorConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// SettlementConfig holds the settlement polling settings
type SettlementConfig struct {
	PollInterval time.Duration
	MaxWait      time.Duration
}

// BatteryConfig holds the sequential battery settings
type BatteryConfig struct {
	CasePause time.Duration
	Salinity  float64
}

// Defaults mirror the observed harness: 5s per-call timeout, 200ms poll
// cadence, 8s settlement ceiling, 0.5s between cases, salinity 2.0.
const (
	DefaultBaseURL        = "http://localhost:3000"
	DefaultRequestTimeout = 5 * time.Second
	DefaultPollInterval   = 200 * time.Millisecond
	DefaultMaxWait        = 8 * time.Second
	DefaultCasePause      = 500 * time.Millisecond
	DefaultSalinity       = 2.0
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Collaborator: CollaboratorConfig{
			BaseURL:        getEnv("DIVLAB_BASE_URL", DefaultBaseURL),
			RequestTimeout: getEnvDuration("DIVLAB_REQUEST_TIMEOUT", DefaultRequestTimeout),
		},
		Settlement: SettlementConfig{
			PollInterval: getEnvDuration("DIVLAB_POLL_INTERVAL", DefaultPollInterval),
			MaxWait:      getEnvDuration("DIVLAB_MAX_WAIT", DefaultMaxWait),
		},
		Battery: BatteryConfig{
			CasePause: getEnvDuration("DIVLAB_CASE_PAUSE", DefaultCasePause),
			Salinity:  getEnvFloat("DIVLAB_SALINITY", DefaultSalinity),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Collaborator.BaseURL == "" {
		return errors.New(errors.CodeConfigInvalid, "collaborator base URL is required")
	}
	if c.Collaborator.RequestTimeout <= 0 {
		return errors.New(errors.CodeConfigInvalid, "request timeout must be positive")
	}
	if c.Settlement.PollInterval <= 0 {
		return errors.New(errors.CodeConfigInvalid, "poll interval must be positive")
	}
	if c.Settlement.MaxWait < c.Settlement.PollInterval {
		return errors.New(errors.CodeConfigInvalid, "max wait must be at least one poll interval")
	}
	if c.Battery.CasePause < 0 {
		return errors.New(errors.CodeConfigInvalid, "case pause must not be negative")
	}
	if c.Battery.Salinity < 0 || c.Battery.Salinity > 10 {
		return errors.New(errors.CodeConfigInvalid, "salinity must be between 0.0 and 10.0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
