package testutil

import (
	"strconv"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/store"
)

// SampleEvent returns a scheduled, unscored event starting at start.
func SampleEvent(id string, start time.Time) games.Event {
	start = start.UTC()
	return games.Event{
		ID:       id,
		Date:     start.Format(time.DateOnly),
		GameTime: start.Format(time.RFC3339),
		AwayTeam: "New York Yankees",
		HomeTeam: "Boston Red Sox",
		Venue:    "Fenway Park",
		GameType: "R",
		Status:   games.StatusScheduled,
	}
}

// FinalEvent returns a concluded event with the given run totals.
func FinalEvent(id string, start time.Time, home, away int) games.Event {
	ev := SampleEvent(id, start)
	ev.Status = games.StatusFinal
	ev.Score = games.NewScore(home, away)
	return ev
}

// SampleSchedule returns n scheduled events one hour apart beginning at first, with ids 1..n.
func SampleSchedule(first time.Time, n int) []games.Event {
	out := make([]games.Event, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, SampleEvent(strconv.Itoa(i+1), first.Add(time.Duration(i)*time.Hour)))
	}
	return out
}

// NewTableWithEvents builds a table preloaded with events.
func NewTableWithEvents(events ...games.Event) *store.Table {
	return store.NewTable(events)
}
