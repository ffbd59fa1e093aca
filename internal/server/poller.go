package server

import (
	"context"

	"github.com/preston-bernstein/mlb-live-service/internal/poller"
)

// Poller defines the poller behavior needed by the server and the admin endpoints.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	RunPass(ctx context.Context) poller.PassResult
}

// Refresher defines the schedule refresh behavior needed by the server.
type Refresher interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	RefreshOnce(ctx context.Context) (int, error)
}
