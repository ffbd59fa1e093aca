package games

import (
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/timeutil"
)

// Status is the free-text state label reported by the live feed (e.g. "Scheduled", "In Progress").
type Status string

const (
	StatusScheduled          Status = "Scheduled"
	StatusPreGame            Status = "Pre-Game"
	StatusWarmup             Status = "Warmup"
	StatusInProgress         Status = "In Progress"
	StatusFinal              Status = "Final"
	StatusGameOver           Status = "Game Over"
	StatusCompletedEarly     Status = "Completed Early"
	StatusCompletedEarlyRain Status = "Completed Early: Rain"
	StatusPostponed          Status = "Postponed"
)

var terminalStatuses = map[Status]struct{}{
	StatusFinal:              {},
	StatusGameOver:           {},
	StatusCompletedEarly:     {},
	StatusCompletedEarlyRain: {},
}

// IsTerminal reports whether the label is one of the known concluded states.
func (s Status) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// Score captures home and away run totals. A nil *Score means neither side has been observed.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// NewScore returns a Score pointer for the given totals.
func NewScore(home, away int) *Score {
	return &Score{Home: home, Away: away}
}

// Event is one scheduled contest and the row shape of the persisted dataset.
type Event struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	GameTime string `json:"gameTime"`
	AwayTeam string `json:"awayTeam"`
	HomeTeam string `json:"homeTeam"`
	Venue    string `json:"venue"`
	GameType string `json:"gameType"`
	Status   Status `json:"status"`
	Score    *Score `json:"score,omitempty"`
}

// Start parses the scheduled start. Both `Z` and explicit offsets are accepted.
func (e Event) Start() (time.Time, error) {
	return timeutil.ParseTimestamp(e.GameTime)
}

// Matchup renders "Away @ Home" for log lines.
func (e Event) Matchup() string {
	return e.AwayTeam + " @ " + e.HomeTeam
}

// Clone returns a deep copy so callers cannot mutate shared score pointers.
func (e Event) Clone() Event {
	if e.Score != nil {
		s := *e.Score
		e.Score = &s
	}
	return e
}

// SameScore reports whether two optional scores are equal, treating two nils as equal.
func SameScore(a, b *Score) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
