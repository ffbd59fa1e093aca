package dataset

import (
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
)

// FSStore loads the dataset file from disk.
type FSStore struct {
	path string
}

// NewFSStore constructs a store for the dataset at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// Path returns the dataset file location.
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Exists reports whether a dataset file is present.
func (s *FSStore) Exists() bool {
	if s == nil || s.path == "" {
		return false
	}
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads every row of the dataset file.
func (s *FSStore) Load() ([]games.Event, error) {
	if s == nil || s.path == "" {
		return nil, errors.New("dataset path not configured")
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return events, nil
}
