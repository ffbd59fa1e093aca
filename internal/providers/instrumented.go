package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/metrics"
)

// Operation names used for metrics and logs.
const (
	OpSchedule = "schedule"
	OpBoxscore = "boxscore"
	OpLiveFeed = "live_feed"
)

// instrumentedProvider records every upstream call. It never retries; the next poll tick does.
type instrumentedProvider struct {
	inner    DataProvider
	logger   *slog.Logger
	recorder *metrics.Recorder
	name     string
	now      func() time.Time
}

// NewInstrumentedProvider wraps inner with metrics and failure logging.
func NewInstrumentedProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string) DataProvider {
	return &instrumentedProvider{
		inner:    inner,
		logger:   logger,
		recorder: recorder,
		name:     providerName,
		now:      time.Now,
	}
}

func (p *instrumentedProvider) FetchSeasonSchedule(ctx context.Context, season string) ([]games.Event, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	events, err := p.inner.FetchSeasonSchedule(ctx, season)
	p.observe(ctx, OpSchedule, start, err, slog.String(logging.FieldSeason, season))
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (p *instrumentedProvider) FetchFinalScore(ctx context.Context, eventID string) (games.Score, error) {
	if p.inner == nil {
		return games.Score{}, ErrProviderUnavailable
	}
	start := p.now()
	score, err := p.inner.FetchFinalScore(ctx, eventID)
	p.observe(ctx, OpBoxscore, start, err, slog.String(logging.FieldGameID, eventID))
	return score, err
}

func (p *instrumentedProvider) FetchLiveStatusAndScore(ctx context.Context, eventID string) (LiveSnapshot, error) {
	if p.inner == nil {
		return LiveSnapshot{}, ErrProviderUnavailable
	}
	start := p.now()
	snap, err := p.inner.FetchLiveStatusAndScore(ctx, eventID)
	p.observe(ctx, OpLiveFeed, start, err, slog.String(logging.FieldGameID, eventID))
	return snap, err
}

func (p *instrumentedProvider) observe(ctx context.Context, op string, start time.Time, err error, attrs ...any) {
	duration := p.now().Sub(start)
	kind := Kind(err)
	p.recorder.RecordProviderAttempt(p.name, op, duration, err, kind)

	if rlErr, ok := AsRateLimitError(err); ok {
		p.recorder.RecordRateLimit(p.name, rlErr.RetryAfter)
	}
	if err == nil {
		return
	}

	args := append([]any{
		slog.String("operation", op),
		slog.String("error_kind", kind),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		slog.Any("error", err),
	}, attrs...)
	logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider call failed", args...)
}
