package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
)

// Update is the refreshed state for one event.
// Score is nil when no complete pair was observed; the stored pair must then be kept.
type Update struct {
	Status games.Status
	Score  *games.Score
	// Final is set when Score came from the authoritative boxscore.
	Final bool
}

// Resolver turns remote observations into an Update for one event.
type Resolver struct {
	provider providers.ScoreProvider
	logger   *slog.Logger
}

// New constructs a resolver over the given provider.
func New(provider providers.ScoreProvider, logger *slog.Logger) *Resolver {
	return &Resolver{provider: provider, logger: logger}
}

// Resolve fetches the live feed once, then chooses the score source from the fresh status:
// terminal events read the boxscore, everything else uses the live linescore.
// A failed live fetch is returned as an error. A failed boxscore fetch is logged and the
// status is still refreshed.
func (r *Resolver) Resolve(ctx context.Context, ev games.Event) (Update, error) {
	if r == nil || r.provider == nil {
		return Update{}, providers.ErrProviderUnavailable
	}

	live, err := r.provider.FetchLiveStatusAndScore(ctx, ev.ID)
	if err != nil {
		return Update{}, fmt.Errorf("live feed for %s: %w", ev.ID, err)
	}

	status := live.Status
	if status == "" {
		status = ev.Status
	}
	update := Update{Status: status}

	if !status.IsTerminal() {
		if live.Score != nil {
			s := *live.Score
			update.Score = &s
		}
		return update, nil
	}

	final, err := r.provider.FetchFinalScore(ctx, ev.ID)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, r.logger), "final score unavailable, keeping stored score",
			slog.String(logging.FieldGameID, ev.ID),
			slog.String(logging.FieldStatus, string(status)),
			slog.Any("error", err),
		)
		return update, nil
	}
	update.Score = &final
	update.Final = true
	return update, nil
}
