package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// FeedKey is the cached home feed view.
const FeedKey = "views:feed"

// NotificationsKey is the cached notification view for one recipient.
func NotificationsKey(userID uint) string {
	return fmt.Sprintf("views:notifications:%d", userID)
}

// Invalidator purges cached views after a committed mutation. Calls are
// best-effort: a failed invalidation never rolls back the mutation that
// triggered it.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// RedisInvalidator drops view keys from Redis.
type RedisInvalidator struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisInvalidator creates a new RedisInvalidator
func NewRedisInvalidator(client *redis.Client, logger *slog.Logger) *RedisInvalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisInvalidator{client: client, logger: logger}
}

func (i *RedisInvalidator) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	// The mutation already committed; don't let a canceled request context
	// skip the purge.
	ctx = context.WithoutCancel(ctx)
	if err := i.client.Del(ctx, keys...).Err(); err != nil {
		i.logger.Warn("view invalidation failed", "keys", keys, "error", err)
	}
}

// Noop discards invalidations. Used in tests and redis-less deployments.
type Noop struct{}

func (Noop) Invalidate(context.Context, ...string) {}
