package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/mlb-live-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from the instance when not explicitly configured.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
