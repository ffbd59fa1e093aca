package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/mlb-live-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing to the returned buffer,
// so skip and fallback messages logged at debug are visible to assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Output: &buf})
	return logger, &buf
}
