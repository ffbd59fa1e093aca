package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
)

const (
	defaultPrefix    = "mlb"
	eventUpdatedType = "event.updated"
)

// Publisher announces changed rows to downstream consumers.
type Publisher interface {
	PublishChange(ctx context.Context, ev games.Event) error
	Close() error
}

// Nop discards every change.
type Nop struct{}

func (Nop) PublishChange(context.Context, games.Event) error { return nil }
func (Nop) Close() error                                     { return nil }

// Config describes the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// redisClient is the subset of *redis.Client used here.
type redisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Message is the payload written to the latest-state key and the change channel.
type Message struct {
	Type        string      `json:"type"`
	Event       games.Event `json:"event"`
	PublishedAt time.Time   `json:"publishedAt"`
}

// RedisPublisher stores the latest state of each changed event and publishes a change message.
type RedisPublisher struct {
	client redisClient
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// NewRedisPublisher connects to Redis and verifies the connection with PING.
func NewRedisPublisher(ctx context.Context, cfg Config, logger *slog.Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	logging.Info(logger, "redis publisher connected", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
	return newRedisPublisher(client, cfg.Prefix, logger), nil
}

func newRedisPublisher(client redisClient, prefix string, logger *slog.Logger) *RedisPublisher {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisPublisher{
		client: client,
		prefix: prefix,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EventKey is where the latest state of an event is stored.
func (p *RedisPublisher) EventKey(id string) string {
	return p.prefix + ":event:" + id
}

// Channel is the pub/sub channel change messages are sent on.
func (p *RedisPublisher) Channel() string {
	return p.prefix + ":events"
}

// PublishChange writes the event to its key and publishes it on the change channel.
func (p *RedisPublisher) PublishChange(ctx context.Context, ev games.Event) error {
	data, err := json.Marshal(Message{Type: eventUpdatedType, Event: ev, PublishedAt: p.now()})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.ID, err)
	}
	if err := p.client.Set(ctx, p.EventKey(ev.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", p.EventKey(ev.ID), err)
	}
	receivers, err := p.client.Publish(ctx, p.Channel(), data).Result()
	if err != nil {
		return fmt.Errorf("redis publish %s: %w", p.Channel(), err)
	}
	logging.Debug(logging.FromContext(ctx, p.logger), "change published",
		slog.String(logging.FieldGameID, ev.ID),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// Close releases the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
