package config

// DatasetConfig locates the persisted CSV dataset.
type DatasetConfig struct {
	Path string `envconfig:"DATASET_PATH" default:"data/mlb_2025_schedule.csv"`
}
