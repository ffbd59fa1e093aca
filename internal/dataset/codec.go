package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
)

// Columns is the persisted header, in order.
var Columns = []string{
	"game_id",
	"date",
	"game_time",
	"team_away",
	"team_home",
	"venue",
	"game_type",
	"status",
	"home_score",
	"away_score",
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("dataset: missing column")

// RowError points at the offending line of a malformed file.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("dataset: line %d column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Encode writes the header and one row per event.
func Encode(w io.Writer, events []games.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, ev := range events {
		home, away := "", ""
		if ev.Score != nil {
			home = strconv.Itoa(ev.Score.Home)
			away = strconv.Itoa(ev.Score.Away)
		}
		record := []string{
			ev.ID,
			ev.Date,
			ev.GameTime,
			ev.AwayTeam,
			ev.HomeTeam,
			ev.Venue,
			ev.GameType,
			string(ev.Status),
			home,
			away,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads a dataset file. Columns are matched by header name; extra columns are ignored.
// A row with only one score present loads with both absent.
func Decode(r io.Reader) ([]games.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset: empty file: %w", err)
		}
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	pos, err := columnPositions(header)
	if err != nil {
		return nil, err
	}

	events := make([]games.Event, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		ev, err := decodeRecord(line, record, pos)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func columnPositions(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}
	for _, col := range Columns {
		if _, ok := pos[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return pos, nil
}

func decodeRecord(line int, record []string, pos map[string]int) (games.Event, error) {
	field := func(col string) string {
		i := pos[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	id, err := normalizeInt(field("game_id"))
	if err != nil {
		return games.Event{}, &RowError{Line: line, Column: "game_id", Err: err}
	}
	if id == nil {
		return games.Event{}, &RowError{Line: line, Column: "game_id", Err: errors.New("empty")}
	}
	home, err := normalizeInt(field("home_score"))
	if err != nil {
		return games.Event{}, &RowError{Line: line, Column: "home_score", Err: err}
	}
	away, err := normalizeInt(field("away_score"))
	if err != nil {
		return games.Event{}, &RowError{Line: line, Column: "away_score", Err: err}
	}

	ev := games.Event{
		ID:       eventID(field("game_id"), *id),
		Date:     field("date"),
		GameTime: field("game_time"),
		AwayTeam: field("team_away"),
		HomeTeam: field("team_home"),
		Venue:    field("venue"),
		GameType: field("game_type"),
		Status:   games.Status(field("status")),
	}
	if home != nil && away != nil {
		ev.Score = games.NewScore(*home, *away)
	}
	return ev, nil
}

// eventID keeps a plain digit id as written. Spreadsheet-style "5.0" ids are rewritten
// because the id is used verbatim in provider request paths.
func eventID(raw string, n int) string {
	raw = strings.TrimSpace(raw)
	if strings.Trim(raw, "0123456789") == "" {
		return raw
	}
	return strconv.Itoa(n)
}

// normalizeInt accepts "5" and spreadsheet-style "5.0". Empty means absent.
func normalizeInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return nil, fmt.Errorf("negative value %q", raw)
		}
		return &n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return nil, fmt.Errorf("not a non-negative integer: %q", raw)
	}
	n := int(f)
	return &n, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
