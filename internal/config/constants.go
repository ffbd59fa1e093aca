package config

const (
	ProviderStatsAPI = "statsapi"
	ProviderFixture  = "fixture"

	ServiceName = "mlb-live-service"
)
