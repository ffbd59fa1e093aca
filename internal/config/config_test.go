package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2025", cfg.Season)
	assert.Equal(t, ProviderStatsAPI, cfg.Provider)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, time.Hour, cfg.EligibilityLead)
	assert.Equal(t, 6*time.Hour, cfg.SettledAfter)
	assert.Equal(t, "0 9 * * *", cfg.ScheduleRefreshCron)
	assert.Equal(t, "data/mlb_2025_schedule.csv", cfg.Dataset.Path)
	assert.Equal(t, "https://statsapi.mlb.com/api", cfg.StatsAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.StatsAPI.Timeout)
	assert.Equal(t, 1, cfg.StatsAPI.SportID)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "mlb", cfg.Redis.Prefix)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "9090", cfg.Metrics.Port)
	assert.Equal(t, ServiceName, cfg.Metrics.ServiceName)
	assert.Empty(t, cfg.AdminToken)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEASON", "2024")
	t.Setenv("PROVIDER", " Fixture ")
	t.Setenv("POLL_INTERVAL", "45s")
	t.Setenv("ELIGIBILITY_LEAD", "90m")
	t.Setenv("SETTLED_AFTER", "0s")
	t.Setenv("SCHEDULE_REFRESH_CRON", "")
	t.Setenv("DATASET_PATH", "/tmp/schedule.csv")
	t.Setenv("STATSAPI_BASE_URL", "http://example.com/api")
	t.Setenv("STATSAPI_TIMEOUT", "3s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("ADMIN_TOKEN", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2024", cfg.Season)
	assert.Equal(t, ProviderFixture, cfg.Provider)
	assert.Equal(t, 45*time.Second, cfg.PollInterval)
	assert.Equal(t, 90*time.Minute, cfg.EligibilityLead)
	assert.Zero(t, cfg.SettledAfter)
	assert.Empty(t, cfg.ScheduleRefreshCron)
	assert.Equal(t, "/tmp/schedule.csv", cfg.Dataset.Path)
	assert.Equal(t, "http://example.com/api", cfg.StatsAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.StatsAPI.Timeout)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "collector:4318", cfg.Metrics.OtlpEndpoint)
	assert.Equal(t, "s3cret", cfg.AdminToken)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLL_INTERVAL")
}

func TestLoadRejectsZeroLead(t *testing.T) {
	t.Setenv("ELIGIBILITY_LEAD", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ELIGIBILITY_LEAD")
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Config{
		Season:              "25",
		Provider:            "espn",
		ScheduleRefreshCron: "every day",
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"POLL_INTERVAL", "ELIGIBILITY_LEAD", "SEASON", "PROVIDER", "DATASET_PATH", "SCHEDULE_REFRESH_CRON", "STATSAPI_TIMEOUT"} {
		assert.Contains(t, err.Error(), want)
	}
}
