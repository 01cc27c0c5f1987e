// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pfrederiksen/ceb-outages/internal/logger"
	"github.com/pfrederiksen/ceb-outages/internal/outage"
	"github.com/pfrederiksen/ceb-outages/internal/scraper"
)

// Config holds all settings, populated from environment variables.
type Config struct {
	URL      string
	Timeout  time.Duration
	Policy   outage.Policy
	Workers  int
	LogLevel logger.Level
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(envOrDefault("CEB_OUTAGES_TIMEOUT", scraper.Timeout.String()))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid CEB_OUTAGES_TIMEOUT")
	}

	policy, err := outage.ParsePolicy(envOrDefault("CEB_OUTAGES_POLICY", "strict"))
	if err != nil {
		return nil, fmt.Errorf("CEB_OUTAGES_POLICY: %w", err)
	}

	workers, err := strconv.Atoi(envOrDefault("CEB_OUTAGES_WORKERS", "4"))
	if err != nil || workers < 1 {
		return nil, errors.New("invalid CEB_OUTAGES_WORKERS")
	}

	level, err := logger.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		URL:      envOrDefault("CEB_OUTAGES_URL", scraper.OutagePageURL),
		Timeout:  timeout,
		Policy:   policy,
		Workers:  workers,
		LogLevel: level,
	}

	if err := ValidateURL(cfg.URL); err != nil {
		return nil, fmt.Errorf("CEB_OUTAGES_URL: %w", err)
	}

	return cfg, nil
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: want an absolute http or https URL", raw)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
