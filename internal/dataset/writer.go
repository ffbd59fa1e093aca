package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
)

// Writer persists the whole dataset atomically and keeps the manifest current.
type Writer struct {
	path string
	now  func() time.Time
}

// NewWriter constructs a writer for the dataset at path.
func NewWriter(path string) *Writer {
	return &Writer{
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Path returns the dataset file location.
func (w *Writer) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Save overwrites the dataset file through a temp file and rename.
// When the encoded bytes match the file on disk nothing is written.
func (w *Writer) Save(events []games.Event) error {
	if w == nil || w.path == "" {
		return fmt.Errorf("dataset writer not configured")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, events); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	data := buf.Bytes()

	if existing, err := os.ReadFile(w.path); err == nil && bytes.Equal(existing, data) {
		if w.manifestCurrent(events) {
			return nil
		}
		return w.updateManifest(events)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	tmp := tempPath(w.path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return w.updateManifest(events)
}

// manifestCurrent reports whether the manifest on disk already describes events.
func (w *Writer) manifestCurrent(events []games.Event) bool {
	m, err := ReadManifest(w.path)
	if err != nil {
		return false
	}
	return m.Version == manifestVersion &&
		m.Dataset.File == filepath.Base(w.path) &&
		m.Dataset.Rows == len(events) &&
		m.Dataset.Scored == countScored(events) &&
		!m.Dataset.LastPersisted.IsZero()
}

func (w *Writer) updateManifest(events []games.Event) error {
	m, _ := ReadManifest(w.path)
	now := w.now()

	m.Dataset.File = filepath.Base(w.path)
	m.Dataset.Rows = len(events)
	m.Dataset.Scored = countScored(events)
	m.Dataset.LastPersisted = now

	return writeManifest(w.path, m, now)
}

func countScored(events []games.Event) int {
	scored := 0
	for _, ev := range events {
		if ev.Score != nil {
			scored++
		}
	}
	return scored
}
