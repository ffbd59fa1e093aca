package config

import "time"

// StatsAPIConfig controls how we talk to the MLB Stats API.
type StatsAPIConfig struct {
	BaseURL string        `envconfig:"STATSAPI_BASE_URL" default:"https://statsapi.mlb.com/api"`
	Timeout time.Duration `envconfig:"STATSAPI_TIMEOUT" default:"10s"`
	SportID int           `envconfig:"STATSAPI_SPORT_ID" default:"1"`
}
