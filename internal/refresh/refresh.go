package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
	"github.com/preston-bernstein/mlb-live-service/internal/store"
)

// Refresher periodically merges newly scheduled games into the table.
// Existing rows are never modified; the poller persists the additions on its next pass.
type Refresher struct {
	provider providers.ScheduleProvider
	table    *store.Table
	season   string
	spec     string
	logger   *slog.Logger
	cron     *cron.Cron
}

// New constructs a refresher. An empty cron expression disables scheduling; RefreshOnce still works.
func New(provider providers.ScheduleProvider, table *store.Table, season, spec string, logger *slog.Logger) *Refresher {
	return &Refresher{
		provider: provider,
		table:    table,
		season:   season,
		spec:     spec,
		logger:   logger,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger{logger: logger}),
			cron.WithChain(cron.Recover(cronLogger{logger: logger}), cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
	}
}

// Start registers the refresh job and starts the scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if r.spec == "" {
		logging.Info(r.logger, "schedule refresh disabled")
		return nil
	}
	if _, err := r.cron.AddFunc(r.spec, func() {
		if _, err := r.RefreshOnce(ctx); err != nil {
			logging.Error(r.logger, "schedule refresh failed", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", r.spec, err)
	}
	r.cron.Start()
	logging.Info(r.logger, "schedule refresh scheduled", slog.String("schedule", r.spec))
	return nil
}

// Stop halts the scheduler and waits for a running job, bounded by ctx.
func (r *Refresher) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RefreshOnce fetches the season schedule and appends unseen events. It returns how many were added.
func (r *Refresher) RefreshOnce(ctx context.Context) (int, error) {
	if r.provider == nil || r.table == nil {
		return 0, providers.ErrProviderUnavailable
	}
	events, err := r.provider.FetchSeasonSchedule(ctx, r.season)
	if err != nil {
		return 0, fmt.Errorf("fetch season %s: %w", r.season, err)
	}
	added := r.table.Append(events)
	logging.Info(r.logger, "schedule refreshed",
		slog.String(logging.FieldSeason, r.season),
		slog.Int("fetched", len(events)),
		slog.Int("added", added),
	)
	return added, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug(l.logger, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error(l.logger, "cron: "+msg, err, keysAndValues...)
}
