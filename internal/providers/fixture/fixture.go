package fixture

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
	"github.com/preston-bernstein/mlb-live-service/internal/timeutil"
)

const (
	providerName = "fixture"
	gameLength   = 3 * time.Hour
	pregameLead  = 30 * time.Minute
)

type fixtureGame struct {
	id       int
	offset   time.Duration
	away     string
	home     string
	venue    string
	homeRate time.Duration
	awayRate time.Duration
}

// Offsets are relative to the top of the hour the provider was created in.
var fixtureGames = []fixtureGame{
	{id: 900001, offset: -26 * time.Hour, away: "New York Yankees", home: "Boston Red Sox", venue: "Fenway Park", homeRate: 35 * time.Minute, awayRate: 50 * time.Minute},
	{id: 900002, offset: -4 * time.Hour, away: "Los Angeles Dodgers", home: "San Francisco Giants", venue: "Oracle Park", homeRate: 45 * time.Minute, awayRate: 30 * time.Minute},
	{id: 900003, offset: -1 * time.Hour, away: "Chicago Cubs", home: "St. Louis Cardinals", venue: "Busch Stadium", homeRate: 40 * time.Minute, awayRate: 55 * time.Minute},
	{id: 900004, offset: 30 * time.Minute, away: "Houston Astros", home: "Texas Rangers", venue: "Globe Life Field", homeRate: 50 * time.Minute, awayRate: 45 * time.Minute},
	{id: 900005, offset: 6 * time.Hour, away: "Atlanta Braves", home: "New York Mets", venue: "Citi Field", homeRate: 30 * time.Minute, awayRate: 60 * time.Minute},
}

// Provider serves a deterministic MLB-shaped season for offline runs.
// Live state advances with the clock: Scheduled, Pre-Game, In Progress, then Final.
type Provider struct {
	anchor time.Time
	now    func() time.Time
}

// New creates a fixture provider anchored at the current hour.
func New() *Provider {
	return NewAt(time.Now())
}

// NewAt anchors the fixture schedule at the hour containing t.
func NewAt(t time.Time) *Provider {
	return &Provider{
		anchor: t.UTC().Truncate(time.Hour),
		now:    time.Now,
	}
}

// FetchSeasonSchedule returns the fixture games for any season.
func (p *Provider) FetchSeasonSchedule(ctx context.Context, season string) ([]games.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	events := make([]games.Event, 0, len(fixtureGames))
	for _, g := range fixtureGames {
		start := p.anchor.Add(g.offset)
		events = append(events, games.Event{
			ID:       strconv.Itoa(g.id),
			Date:     timeutil.FormatDate(start),
			GameTime: start.Format(time.RFC3339),
			AwayTeam: g.away,
			HomeTeam: g.home,
			Venue:    g.venue,
			GameType: "R",
			Status:   games.StatusScheduled,
		})
	}
	return events, nil
}

// FetchFinalScore returns the totals at game end, or the running totals while the game is live.
func (p *Provider) FetchFinalScore(ctx context.Context, eventID string) (games.Score, error) {
	if err := ctx.Err(); err != nil {
		return games.Score{}, err
	}
	g, err := p.lookup(providers.OpBoxscore, eventID)
	if err != nil {
		return games.Score{}, err
	}
	elapsed := p.elapsed(g)
	if elapsed > gameLength {
		elapsed = gameLength
	}
	return runsAt(g, elapsed), nil
}

// FetchLiveStatusAndScore derives the live state from time elapsed since first pitch.
func (p *Provider) FetchLiveStatusAndScore(ctx context.Context, eventID string) (providers.LiveSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return providers.LiveSnapshot{}, err
	}
	g, err := p.lookup(providers.OpLiveFeed, eventID)
	if err != nil {
		return providers.LiveSnapshot{}, err
	}

	elapsed := p.elapsed(g)
	switch {
	case elapsed < -pregameLead:
		return providers.LiveSnapshot{Status: games.StatusScheduled}, nil
	case elapsed < 0:
		return providers.LiveSnapshot{Status: games.StatusPreGame, Score: games.NewScore(0, 0)}, nil
	case elapsed < gameLength:
		score := runsAt(g, elapsed)
		return providers.LiveSnapshot{Status: games.StatusInProgress, Score: &score}, nil
	default:
		score := runsAt(g, gameLength)
		return providers.LiveSnapshot{Status: games.StatusFinal, Score: &score}, nil
	}
}

func (p *Provider) elapsed(g fixtureGame) time.Duration {
	return p.now().Sub(p.anchor.Add(g.offset))
}

func (p *Provider) lookup(op, eventID string) (fixtureGame, error) {
	for _, g := range fixtureGames {
		if strconv.Itoa(g.id) == eventID {
			return g, nil
		}
	}
	return fixtureGame{}, &providers.TransportError{
		Provider:   providerName,
		Op:         op,
		StatusCode: http.StatusNotFound,
		Err:        fmt.Errorf("unknown game %s", eventID),
	}
}

func runsAt(g fixtureGame, elapsed time.Duration) games.Score {
	if elapsed <= 0 {
		return games.Score{}
	}
	return games.Score{
		Home: int(elapsed / g.homeRate),
		Away: int(elapsed / g.awayRate),
	}
}
