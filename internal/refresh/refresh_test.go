package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
	"github.com/preston-bernstein/mlb-live-service/internal/store"
	"github.com/preston-bernstein/mlb-live-service/internal/teststubs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshOnceAppendsOnlyNewEvents(t *testing.T) {
	table := store.NewTable([]games.Event{
		{ID: "1", Status: games.StatusFinal, Score: games.NewScore(3, 2)},
	})
	provider := teststubs.NewStubProvider()
	provider.Schedule = []games.Event{
		{ID: "1", Status: games.StatusScheduled},
		{ID: "2", Status: games.StatusScheduled},
		{ID: "3", Status: games.StatusPostponed},
	}

	r := New(provider, table, "2025", "", nil)
	added, err := r.RefreshOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Dirty())

	existing, _ := table.Get("1")
	assert.Equal(t, games.StatusFinal, existing.Status, "existing rows are not overwritten")
	assert.Equal(t, &games.Score{Home: 3, Away: 2}, existing.Score)

	_, version := table.Snapshot()
	require.True(t, table.MarkCleanAt(version))
	added, err = r.RefreshOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.False(t, table.Dirty())
}

func TestRefreshOnceFailureLeavesTableAlone(t *testing.T) {
	table := store.NewTable([]games.Event{{ID: "1"}})
	provider := teststubs.NewStubProvider()
	provider.ScheduleErr = &providers.TransportError{Provider: "stub", Op: providers.OpSchedule, Err: errors.New("down")}

	_, err := New(provider, table, "2025", "", nil).RefreshOnce(context.Background())
	require.Error(t, err)
	assert.True(t, providers.IsTransport(err))
	assert.Equal(t, 1, table.Len())
	assert.False(t, table.Dirty())
}

func TestRefreshOnceWithoutProvider(t *testing.T) {
	_, err := New(nil, store.NewTable(nil), "2025", "", nil).RefreshOnce(context.Background())
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestStartDisabledWithEmptyCronExpression(t *testing.T) {
	r := New(teststubs.NewStubProvider(), store.NewTable(nil), "2025", "", nil)
	require.NoError(t, r.Start(context.Background()))
	assert.Empty(t, r.cron.Entries())
	require.NoError(t, r.Stop(context.Background()))
}

func TestStartRejectsInvalidCronExpression(t *testing.T) {
	r := New(teststubs.NewStubProvider(), store.NewTable(nil), "2025", "not a cron", nil)
	assert.Error(t, r.Start(context.Background()))
}

func TestStartSchedulesJob(t *testing.T) {
	r := New(teststubs.NewStubProvider(), store.NewTable(nil), "2025", "0 9 * * *", nil)
	require.NoError(t, r.Start(context.Background()))

	entries := r.cron.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Next
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, time.UTC, next.Location())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}
