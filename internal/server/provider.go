package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-live-service/internal/config"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
	"github.com/preston-bernstein/mlb-live-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-live-service/internal/providers/statsapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderStatsAPI, "":
		return statsapi.NewClient(statsapi.Config{
			BaseURL: cfg.StatsAPI.BaseURL,
			Timeout: cfg.StatsAPI.Timeout,
			SportID: cfg.StatsAPI.SportID,
			Logger:  logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
