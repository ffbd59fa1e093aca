package store

import (
	"sync"
	"testing"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []games.Event {
	return []games.Event{
		{ID: "3", Status: games.StatusScheduled},
		{ID: "1", Status: games.StatusFinal, Score: games.NewScore(4, 2)},
		{ID: "2", Status: games.StatusScheduled},
	}
}

func TestNewTableKeepsOrderAndDropsDuplicates(t *testing.T) {
	rows := append(sampleRows(), games.Event{ID: "1", Status: games.StatusPostponed})
	table := NewTable(rows)

	require.Equal(t, 3, table.Len())
	ids := []string{}
	for _, ev := range table.Events() {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)

	got, ok := table.Get("1")
	require.True(t, ok)
	assert.Equal(t, games.StatusFinal, got.Status)
	assert.False(t, table.Dirty())
}

func TestEventsReturnsDetachedCopies(t *testing.T) {
	table := NewTable(sampleRows())

	events := table.Events()
	events[1].Score.Home = 99
	events[0].Status = "mutated"

	got, _ := table.Get("1")
	assert.Equal(t, 4, got.Score.Home)
	first, _ := table.Get("3")
	assert.Equal(t, games.StatusScheduled, first.Status)
}

func TestApplyReportsChangesAndMarksDirty(t *testing.T) {
	table := NewTable(sampleRows())

	assert.False(t, table.Apply("1", games.StatusFinal, games.NewScore(4, 2)), "identical values are not a change")
	assert.False(t, table.Dirty())

	assert.True(t, table.Apply("2", games.StatusInProgress, nil))
	assert.True(t, table.Dirty())

	got, _ := table.Get("2")
	assert.Equal(t, games.StatusInProgress, got.Status)
	assert.Nil(t, got.Score)

	assert.True(t, table.Apply("2", games.StatusInProgress, games.NewScore(1, 0)))
	got, _ = table.Get("2")
	assert.Equal(t, &games.Score{Home: 1, Away: 0}, got.Score)
}

func TestApplyKeepsStoredValuesWhenUpdateIsPartial(t *testing.T) {
	table := NewTable(sampleRows())

	assert.False(t, table.Apply("1", "", nil))
	got, _ := table.Get("1")
	assert.Equal(t, games.StatusFinal, got.Status)
	assert.Equal(t, &games.Score{Home: 4, Away: 2}, got.Score)

	assert.False(t, table.Apply("missing", games.StatusFinal, games.NewScore(1, 1)))
}

func TestApplyCopiesScore(t *testing.T) {
	table := NewTable(sampleRows())
	score := games.NewScore(2, 2)
	table.Apply("2", games.StatusInProgress, score)
	score.Home = 10

	got, _ := table.Get("2")
	assert.Equal(t, 2, got.Score.Home)
}

func TestAppendAddsOnlyNewIDs(t *testing.T) {
	table := NewTable(sampleRows())

	added := table.Append([]games.Event{
		{ID: "1", Status: games.StatusPostponed},
		{ID: "4", Status: games.StatusScheduled},
	})
	assert.Equal(t, 1, added)
	assert.Equal(t, 4, table.Len())
	assert.True(t, table.Dirty())

	existing, _ := table.Get("1")
	assert.Equal(t, games.StatusFinal, existing.Status)

	events := table.Events()
	assert.Equal(t, "4", events[len(events)-1].ID)

	_, version := table.Snapshot()
	require.True(t, table.MarkCleanAt(version))
	assert.Equal(t, 0, table.Append([]games.Event{{ID: "4"}}))
	assert.False(t, table.Dirty())
}

func TestReplaceClearsDirty(t *testing.T) {
	table := NewTable(sampleRows())
	table.Apply("2", games.StatusInProgress, nil)
	require.True(t, table.Dirty())

	table.Replace([]games.Event{{ID: "9"}})
	assert.False(t, table.Dirty())
	assert.Equal(t, 1, table.Len())
}

func TestTableConcurrentAccess(t *testing.T) {
	table := NewTable(sampleRows())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table.Apply("2", games.StatusInProgress, games.NewScore(i, i))
			_ = table.Events()
			_ = table.Dirty()
		}(i)
	}
	wg.Wait()

	got, _ := table.Get("2")
	require.NotNil(t, got.Score)
	assert.Equal(t, got.Score.Home, got.Score.Away)
}

func TestMarkCleanAtIgnoresStaleVersion(t *testing.T) {
	table := NewTable(sampleRows())
	table.Apply("2", games.StatusInProgress, nil)

	rows, version := table.Snapshot()
	require.Len(t, rows, 3)

	table.Append([]games.Event{{ID: "5"}})
	assert.False(t, table.MarkCleanAt(version), "rows appended after the snapshot are still unsaved")
	assert.True(t, table.Dirty())

	_, version = table.Snapshot()
	assert.True(t, table.MarkCleanAt(version))
	assert.False(t, table.Dirty())
}
