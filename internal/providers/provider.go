package providers

import (
	"context"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
)

// ScheduleProvider fetches the full schedule for a season.
type ScheduleProvider interface {
	FetchSeasonSchedule(ctx context.Context, season string) ([]games.Event, error)
}

// LiveSnapshot is what the live feed reports for one event.
// Status is empty when the feed omits it. Score is nil until the feed reports both totals.
type LiveSnapshot struct {
	Status games.Status
	Score  *games.Score
}

// ScoreProvider fetches per-event status and score data.
type ScoreProvider interface {
	// FetchFinalScore returns the authoritative totals, or an error. Never partial data.
	FetchFinalScore(ctx context.Context, eventID string) (games.Score, error)
	// FetchLiveStatusAndScore returns the current status and optional running totals.
	FetchLiveStatusAndScore(ctx context.Context, eventID string) (LiveSnapshot, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	ScoreProvider
}
