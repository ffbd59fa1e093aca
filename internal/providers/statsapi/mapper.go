package statsapi

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
)

// mapScheduleGame converts one schedule entry. gamePk, gameDate and both team names are required.
func mapScheduleGame(date string, g scheduleGame) (games.Event, error) {
	switch {
	case g.GamePk == nil:
		return games.Event{}, missing(providers.OpSchedule, "gamePk")
	case strings.TrimSpace(g.GameDate) == "":
		return games.Event{}, missing(providers.OpSchedule, "gameDate")
	case strings.TrimSpace(g.Teams.Away.Team.Name) == "":
		return games.Event{}, missing(providers.OpSchedule, "teams.away.team.name")
	case strings.TrimSpace(g.Teams.Home.Team.Name) == "":
		return games.Event{}, missing(providers.OpSchedule, "teams.home.team.name")
	}

	return games.Event{
		ID:       strconv.FormatInt(*g.GamePk, 10),
		Date:     date,
		GameTime: g.GameDate,
		AwayTeam: g.Teams.Away.Team.Name,
		HomeTeam: g.Teams.Home.Team.Name,
		Venue:    orDefault(g.Venue.Name, unknownVenue),
		GameType: orDefault(g.GameType, unknownGameType),
		Status:   games.Status(orDefault(g.Status.DetailedState, string(games.StatusScheduled))),
	}, nil
}

func mapBoxscore(b boxscoreResponse) (games.Score, error) {
	home := b.Teams.Home.TeamStats.Batting.Runs
	away := b.Teams.Away.TeamStats.Batting.Runs
	if home == nil {
		return games.Score{}, missing(providers.OpBoxscore, "teams.home.teamStats.batting.runs")
	}
	if away == nil {
		return games.Score{}, missing(providers.OpBoxscore, "teams.away.teamStats.batting.runs")
	}
	return games.Score{Home: *home, Away: *away}, nil
}

// mapLiveFeed never fails: a missing status stays empty and a half-reported linescore yields no score.
func mapLiveFeed(f liveFeedResponse) providers.LiveSnapshot {
	snap := providers.LiveSnapshot{
		Status: games.Status(strings.TrimSpace(f.GameData.Status.DetailedState)),
	}
	home := f.LiveData.Linescore.Teams.Home.Runs
	away := f.LiveData.Linescore.Teams.Away.Runs
	if home != nil && away != nil {
		snap.Score = games.NewScore(*home, *away)
	}
	return snap
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func missing(op, field string) error {
	return &providers.DecodeError{Provider: providerName, Op: op, Field: field}
}
