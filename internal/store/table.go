package store

import (
	"sync"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
)

// Table keeps the dataset rows in memory in their persisted order.
// It tracks whether any row changed since the last successful persist.
type Table struct {
	mu    sync.RWMutex
	rows  []games.Event
	index map[string]int
	dirty bool
	// version increments on every mutation so a persist can tell whether it saw the latest rows.
	version uint64
}

// NewTable constructs a table from the given rows. Later duplicates of an ID are dropped.
func NewTable(events []games.Event) *Table {
	t := &Table{}
	t.Replace(events)
	return t
}

// Replace swaps in a new set of rows and clears the dirty flag.
func (t *Table) Replace(events []games.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = make([]games.Event, 0, len(events))
	t.index = make(map[string]int, len(events))
	for _, ev := range events {
		if _, dup := t.index[ev.ID]; dup {
			continue
		}
		t.index[ev.ID] = len(t.rows)
		t.rows = append(t.rows, ev.Clone())
	}
	t.dirty = false
	t.version++
}

// Events returns a copy of all rows in stored order.
func (t *Table) Events() []games.Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]games.Event, len(t.rows))
	for i, ev := range t.rows {
		result[i] = ev.Clone()
	}
	return result
}

// Snapshot returns a copy of all rows together with the version they were read at.
func (t *Table) Snapshot() ([]games.Event, uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]games.Event, len(t.rows))
	for i, ev := range t.rows {
		result[i] = ev.Clone()
	}
	return result, t.version
}

// Get retrieves a row by ID.
func (t *Table) Get(id string) (games.Event, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[id]
	if !ok {
		return games.Event{}, false
	}
	return t.rows[i].Clone(), true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Apply writes a refreshed status and score to a row and reports whether anything changed.
// An empty status or a nil score leaves the stored value in place, so the score pair is only
// ever replaced as a whole.
func (t *Table) Apply(id string, status games.Status, score *games.Score) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[id]
	if !ok {
		return false
	}
	row := &t.rows[i]
	changed := false

	if status != "" && status != row.Status {
		row.Status = status
		changed = true
	}
	if score != nil && !games.SameScore(row.Score, score) {
		s := *score
		row.Score = &s
		changed = true
	}

	if changed {
		t.dirty = true
		t.version++
	}
	return changed
}

// Append adds rows whose IDs are not present yet and returns how many were added.
// Existing rows are never touched.
func (t *Table) Append(events []games.Event) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	added := 0
	for _, ev := range events {
		if _, exists := t.index[ev.ID]; exists {
			continue
		}
		t.index[ev.ID] = len(t.rows)
		t.rows = append(t.rows, ev.Clone())
		added++
	}
	if added > 0 {
		t.dirty = true
		t.version++
	}
	return added
}

// Dirty reports whether the table has unpersisted changes.
func (t *Table) Dirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dirty
}

// MarkCleanAt clears the dirty flag only if nothing changed since version was read.
// It reports whether the flag was cleared.
func (t *Table) MarkCleanAt(version uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.version != version {
		return false
	}
	t.dirty = false
	return true
}
