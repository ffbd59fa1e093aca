package statsapi

import "time"

const (
	providerName       = "statsapi"
	defaultBaseURL     = "https://statsapi.mlb.com/api"
	defaultHTTPTimeout = 10 * time.Second
	defaultSportID     = 1
	maxErrorBodyBytes  = 512

	schedulePath = "/v1/schedule"
	boxscorePath = "/v1/game/%s/boxscore"
	liveFeedPath = "/v1.1/game/%s/feed/live"

	unknownVenue    = "Unknown"
	unknownGameType = "Unknown"
)
