package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config holds runtime configuration for the sync service.
type Config struct {
	Season              string        `envconfig:"SEASON" default:"2025"`
	Provider            string        `envconfig:"PROVIDER" default:"statsapi"`
	Port                string        `envconfig:"PORT" default:"4000"`
	PollInterval        time.Duration `envconfig:"POLL_INTERVAL" default:"60s"`
	EligibilityLead     time.Duration `envconfig:"ELIGIBILITY_LEAD" default:"1h"`
	SettledAfter        time.Duration `envconfig:"SETTLED_AFTER" default:"6h"`
	ScheduleRefreshCron string        `envconfig:"SCHEDULE_REFRESH_CRON" default:"0 9 * * *"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat           string        `envconfig:"LOG_FORMAT" default:"text"`
	AdminToken          string        `envconfig:"ADMIN_TOKEN"`

	Dataset  DatasetConfig  `ignored:"true"`
	StatsAPI StatsAPIConfig `ignored:"true"`
	Redis    RedisConfig    `ignored:"true"`
	Metrics  MetricsConfig  `ignored:"true"`
}

// Load reads an optional .env file, then environment variables with defaults, and validates the result.
func Load() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	// Sections use fully qualified variable names, so each is processed without a prefix.
	sections := []any{&cfg, &cfg.Dataset, &cfg.StatsAPI, &cfg.Redis, &cfg.Metrics}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return Config{}, fmt.Errorf("failed to process environment config: %w", err)
		}
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks values envconfig cannot enforce through tags.
func (c Config) Validate() error {
	var errs []error
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval))
	}
	if c.EligibilityLead <= 0 {
		errs = append(errs, fmt.Errorf("ELIGIBILITY_LEAD must be positive, got %s", c.EligibilityLead))
	}
	if c.SettledAfter < 0 {
		errs = append(errs, fmt.Errorf("SETTLED_AFTER must not be negative, got %s", c.SettledAfter))
	}
	if len(c.Season) != 4 || strings.Trim(c.Season, "0123456789") != "" {
		errs = append(errs, fmt.Errorf("SEASON must be a four digit year, got %q", c.Season))
	}
	switch c.Provider {
	case ProviderStatsAPI, ProviderFixture:
	default:
		errs = append(errs, fmt.Errorf("PROVIDER must be %q or %q, got %q", ProviderStatsAPI, ProviderFixture, c.Provider))
	}
	if strings.TrimSpace(c.Dataset.Path) == "" {
		errs = append(errs, errors.New("DATASET_PATH is required"))
	}
	if c.ScheduleRefreshCron != "" {
		if _, err := cron.ParseStandard(c.ScheduleRefreshCron); err != nil {
			errs = append(errs, fmt.Errorf("SCHEDULE_REFRESH_CRON: %w", err))
		}
	}
	if c.StatsAPI.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("STATSAPI_TIMEOUT must be positive, got %s", c.StatsAPI.Timeout))
	}
	return errors.Join(errs...)
}
