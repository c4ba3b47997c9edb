package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/checkout-backend/internal/pkg/logger"
)

// EventCache remembers provider event ids that already reconciled, so
// redelivered webhooks can be acknowledged without opening a transaction.
// It is strictly best-effort: correctness comes from the in-transaction
// terminal-status guard, and a cold or absent cache only costs a DB round
// trip. Failures are logged and treated as "not seen".
type EventCache interface {
	Seen(ctx context.Context, eventID string) bool
	MarkProcessed(ctx context.Context, eventID string)
	Close() error
}

type eventCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewEventCache(log *logger.Logger) (EventCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &eventCache{
		log: log.With("service", "RedisEventCache"),
		rdb: rdb,
		ttl: 24 * time.Hour,
	}, nil
}

func (c *eventCache) Seen(ctx context.Context, eventID string) bool {
	if c == nil || c.rdb == nil || eventID == "" {
		return false
	}
	n, err := c.rdb.Exists(ctx, c.key(eventID)).Result()
	if err != nil {
		c.log.Warn("Event cache lookup failed", "event_id", eventID, "error", err)
		return false
	}
	return n > 0
}

func (c *eventCache) MarkProcessed(ctx context.Context, eventID string) {
	if c == nil || c.rdb == nil || eventID == "" {
		return
	}
	if err := c.rdb.SetNX(ctx, c.key(eventID), 1, c.ttl).Err(); err != nil {
		c.log.Warn("Event cache write failed", "event_id", eventID, "error", err)
	}
}

func (c *eventCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *eventCache) key(eventID string) string {
	return "webhook:event:" + eventID
}
