package fixture

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
)

var anchor = time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

func newAt(now time.Time) *Provider {
	p := NewAt(anchor.Add(17 * time.Minute))
	p.now = func() time.Time { return now }
	return p
}

func TestFetchSeasonScheduleIsDeterministic(t *testing.T) {
	p := newAt(anchor)
	first, err := p.FetchSeasonSchedule(context.Background(), "2025")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	second, _ := p.FetchSeasonSchedule(context.Background(), "2025")

	if len(first) != len(fixtureGames) {
		t.Fatalf("expected %d events, got %d", len(fixtureGames), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected stable schedule, got %+v vs %+v", first[i], second[i])
		}
		if _, err := first[i].Start(); err != nil {
			t.Fatalf("expected parseable start for %s: %v", first[i].ID, err)
		}
		if first[i].Score != nil || first[i].Status != games.StatusScheduled {
			t.Fatalf("expected fresh schedule rows, got %+v", first[i])
		}
	}
	if first[0].GameTime != "2025-07-03T16:00:00Z" || first[0].Date != "2025-07-03" {
		t.Fatalf("unexpected first event timing %+v", first[0])
	}
}

func TestLiveFeedProgressesWithClock(t *testing.T) {
	const id = "900004" // starts 30m after the anchor hour
	start := anchor.Add(30 * time.Minute)

	cases := []struct {
		now    time.Time
		status games.Status
		score  *games.Score
	}{
		{start.Add(-2 * time.Hour), games.StatusScheduled, nil},
		{start.Add(-10 * time.Minute), games.StatusPreGame, games.NewScore(0, 0)},
		{start.Add(100 * time.Minute), games.StatusInProgress, games.NewScore(2, 2)},
		{start.Add(5 * time.Hour), games.StatusFinal, games.NewScore(3, 4)},
	}

	for _, tc := range cases {
		snap, err := newAt(tc.now).FetchLiveStatusAndScore(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if snap.Status != tc.status || !games.SameScore(snap.Score, tc.score) {
			t.Fatalf("at %s expected %s %+v, got %s %+v", tc.now, tc.status, tc.score, snap.Status, snap.Score)
		}
	}
}

func TestFinalScoreMatchesLiveFinal(t *testing.T) {
	p := newAt(anchor.Add(48 * time.Hour))
	for _, g := range fixtureGames {
		id := itoa(g.id)
		live, err := p.FetchLiveStatusAndScore(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		final, err := p.FetchFinalScore(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !live.Status.IsTerminal() || *live.Score != final {
			t.Fatalf("expected consistent final for %s: %+v vs %+v", id, live, final)
		}
	}
}

func TestUnknownGameIsTransportError(t *testing.T) {
	p := newAt(anchor)
	if _, err := p.FetchLiveStatusAndScore(context.Background(), "1"); !providers.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if _, err := p.FetchFinalScore(context.Background(), "1"); !providers.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newAt(anchor).FetchSeasonSchedule(ctx, "2025"); err == nil {
		t.Fatal("expected context error")
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
