package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/mlb-live-service/internal/config"
	"github.com/preston-bernstein/mlb-live-service/internal/dataset"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
	"github.com/preston-bernstein/mlb-live-service/internal/store"
)

// ErrEmptySchedule is returned when no dataset exists and the upstream schedule has no events.
var ErrEmptySchedule = errors.New("season schedule returned no events")

type datasetComponents struct {
	store  *dataset.FSStore
	writer *dataset.Writer
}

func buildDataset(cfg config.Config) datasetComponents {
	return datasetComponents{
		store:  dataset.NewFSStore(cfg.Dataset.Path),
		writer: dataset.NewWriter(cfg.Dataset.Path),
	}
}

// bootstrapTable loads the persisted dataset, or fetches the season schedule and persists it when none exists.
// Any failure here is a startup failure: the process has nothing to poll.
func bootstrapTable(ctx context.Context, comps datasetComponents, provider providers.ScheduleProvider, season string, logger *slog.Logger) (*store.Table, error) {
	if comps.store.Exists() {
		events, err := comps.store.Load()
		if err != nil {
			return nil, fmt.Errorf("load dataset %s: %w", comps.store.Path(), err)
		}
		logging.Info(logger, "dataset loaded",
			slog.String("path", comps.store.Path()),
			slog.Int(logging.FieldCount, len(events)),
		)
		return store.NewTable(events), nil
	}

	if provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	logging.Info(logger, "no dataset found, fetching season schedule",
		slog.String("path", comps.store.Path()),
		slog.String(logging.FieldSeason, season),
	)
	events, err := provider.FetchSeasonSchedule(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("initial schedule fetch for season %s: %w", season, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("season %s: %w", season, ErrEmptySchedule)
	}
	if err := comps.writer.Save(events); err != nil {
		return nil, fmt.Errorf("persist initial dataset: %w", err)
	}
	logging.Info(logger, "dataset created",
		slog.String("path", comps.writer.Path()),
		slog.Int(logging.FieldCount, len(events)),
	)
	return store.NewTable(events), nil
}
