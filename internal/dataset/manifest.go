package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestVersion = 1

// Manifest tracks dataset metadata for downstream readers.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Dataset     DatasetMeta `json:"dataset"`
}

type DatasetMeta struct {
	File          string    `json:"file"`
	Rows          int       `json:"rows"`
	Scored        int       `json:"scored"`
	LastPersisted time.Time `json:"lastPersisted"`
}

func defaultManifest(datasetPath string) Manifest {
	return Manifest{
		Version: manifestVersion,
		Dataset: DatasetMeta{File: filepath.Base(datasetPath)},
	}
}

// ReadManifest loads the manifest next to datasetPath.
func ReadManifest(datasetPath string) (Manifest, error) {
	f, err := os.Open(ManifestPath(datasetPath))
	if err != nil {
		return defaultManifest(datasetPath), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(datasetPath), err
	}
	return m, nil
}

func writeManifest(datasetPath string, m Manifest, now time.Time) error {
	m.Version = manifestVersion
	m.GeneratedAt = now
	path := ManifestPath(datasetPath)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := tempPath(path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
