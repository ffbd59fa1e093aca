package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/mlb-live-service/internal/config"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/publish"
)

var redisPublisherFactory = func(ctx context.Context, cfg publish.Config, logger *slog.Logger) (publish.Publisher, error) {
	pub, err := publish.NewRedisPublisher(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// buildPublisher returns a Redis publisher when configured. A connection failure degrades to Nop.
func buildPublisher(ctx context.Context, cfg config.Config, logger *slog.Logger) publish.Publisher {
	if !cfg.Redis.Enabled() {
		return publish.Nop{}
	}
	pub, err := redisPublisherFactory(ctx, publish.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	}, logger)
	if err != nil {
		logging.Warn(logger, "redis publisher unavailable, continuing without change publication",
			slog.String("addr", cfg.Redis.Addr),
			slog.Any("error", err),
		)
		return publish.Nop{}
	}
	return pub
}
