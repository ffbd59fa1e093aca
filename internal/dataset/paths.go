package dataset

import "path/filepath"

// ManifestPath returns the manifest location for a dataset file: manifest.json in the same directory.
func ManifestPath(datasetPath string) string {
	return filepath.Join(filepath.Dir(datasetPath), "manifest.json")
}

func tempPath(target string) string {
	return target + ".tmp"
}
