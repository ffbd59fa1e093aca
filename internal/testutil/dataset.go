package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/mlb-live-service/internal/dataset"
	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
)

// TempDatasetPath returns a dataset path inside a fresh temp dir. The file does not exist yet.
func TempDatasetPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "schedule.csv")
}

// WriteDataset persists events to a temp dataset and returns its path.
func WriteDataset(t *testing.T, events []games.Event) string {
	t.Helper()
	path := TempDatasetPath(t)
	if err := dataset.NewWriter(path).Save(events); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

// ReadDataset loads the dataset at path, failing the test on error.
func ReadDataset(t *testing.T, path string) []games.Event {
	t.Helper()
	events, err := dataset.NewFSStore(path).Load()
	if err != nil {
		t.Fatalf("failed to read dataset %s: %v", path, err)
	}
	return events
}

// ReadDatasetRaw returns the raw bytes of the dataset file.
func ReadDatasetRaw(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read dataset %s: %v", path, err)
	}
	return data
}
