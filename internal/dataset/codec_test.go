package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []games.Event {
	return []games.Event{
		{
			ID:       "778563",
			Date:     "2025-03-27",
			GameTime: "2025-03-27T17:05:00Z",
			AwayTeam: "Milwaukee Brewers",
			HomeTeam: "New York Yankees",
			Venue:    "Yankee Stadium",
			GameType: "R",
			Status:   games.StatusFinal,
			Score:    games.NewScore(20, 9),
		},
		{
			ID:       "778564",
			Date:     "2025-03-27",
			GameTime: "2025-03-27T20:10:00+00:00",
			AwayTeam: "Detroit Tigers",
			HomeTeam: "Los Angeles Dodgers",
			Venue:    "Dodger Stadium, \"Chavez Ravine\"",
			GameType: "R",
			Status:   games.StatusCompletedEarlyRain,
			Score:    games.NewScore(0, 0),
		},
		{
			ID:       "778570",
			Date:     "2025-03-28",
			GameTime: "2025-03-28T23:05:00Z",
			AwayTeam: "Boston Red Sox",
			HomeTeam: "Texas Rangers",
			Venue:    "Unknown",
			GameType: "Unknown",
			Status:   games.StatusScheduled,
		},
	}
}

func TestEncodeWritesHeaderAndEmptyScores(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleEvents()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "game_id,date,game_time,team_away,team_home,venue,game_type,status,home_score,away_score", lines[0])
	assert.Equal(t, "778563,2025-03-27,2025-03-27T17:05:00Z,Milwaukee Brewers,New York Yankees,Yankee Stadium,R,Final,20,9", lines[1])
	assert.Equal(t, "778570,2025-03-28,2025-03-28T23:05:00Z,Boston Red Sox,Texas Rangers,Unknown,Unknown,Scheduled,,", lines[3])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleEvents()))
	first := buf.String()

	decoded, err := Decode(strings.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, sampleEvents(), decoded)

	var again bytes.Buffer
	require.NoError(t, Encode(&again, decoded))
	assert.Equal(t, first, again.String(), "round trip should be byte-for-byte stable")
}

func TestDecodeToleratesSpreadsheetStyleFiles(t *testing.T) {
	raw := "\ufeffgame_id,date,game_time,team_away,team_home,venue,game_type,status,home_score,away_score,notes\n" +
		"778563.0,2025-03-27,2025-03-27 17:05:00+00:00,A,B,V,R,Final,5.0,3.0,x\n" +
		"\n" +
		"778564,2025-03-27,2025-03-27T20:10:00Z,C,D,V,R,In Progress,2,\n"

	events, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "778563", events[0].ID)
	assert.Equal(t, &games.Score{Home: 5, Away: 3}, events[0].Score)
	assert.Nil(t, events[1].Score, "a half score loads as absent")
}

func TestDecodeKeepsDigitIDsVerbatim(t *testing.T) {
	raw := strings.Join(Columns, ",") + "\n" +
		"0778563,2025-03-27,2025-03-27T17:05:00Z,A,B,V,R,Final,5,3\n" +
		" 778564 ,2025-03-27,2025-03-27T20:10:00Z,C,D,V,R,Scheduled,,\n"

	events, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "0778563", events[0].ID)
	assert.Equal(t, "778564", events[1].ID)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, events[:1]))
	assert.Equal(t, strings.Join(Columns, ",")+"\n"+"0778563,2025-03-27,2025-03-27T17:05:00Z,A,B,V,R,Final,5,3\n", buf.String())
}

func TestDecodeReordersColumnsByHeader(t *testing.T) {
	raw := "away_score,home_score,status,game_type,venue,team_home,team_away,game_time,date,game_id\n" +
		"1,2,Final,R,V,Home,Away,2025-04-01T23:05:00Z,2025-04-01,42\n"

	events, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, games.Event{
		ID:       "42",
		Date:     "2025-04-01",
		GameTime: "2025-04-01T23:05:00Z",
		AwayTeam: "Away",
		HomeTeam: "Home",
		Venue:    "V",
		GameType: "R",
		Status:   games.StatusFinal,
		Score:    games.NewScore(2, 1),
	}, events[0])
}

func TestDecodeErrors(t *testing.T) {
	header := strings.Join(Columns, ",") + "\n"

	_, err := Decode(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("game_id,date\n1,2025-04-01\n"))
	assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)

	_, err = Decode(strings.NewReader(header + "1,2025-04-01,t,a,h,v,R,Final,five,3\n"))
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr), "got %v", err)
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, "home_score", rowErr.Column)

	_, err = Decode(strings.NewReader(header + ",2025-04-01,t,a,h,v,R,Final,,\n"))
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "game_id", rowErr.Column)

	_, err = Decode(strings.NewReader(header + "1,2025-04-01,t,a,h,v,R,Final,-1,3\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(header + "1,2025-04-01,t,a,h,v,R,Final,2.5,3\n"))
	assert.Error(t, err)
}

func TestDecodeHeaderOnly(t *testing.T) {
	events, err := Decode(strings.NewReader(strings.Join(Columns, ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, events)
}
