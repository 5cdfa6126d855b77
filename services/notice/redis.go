package noticesvc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/classportal/backend/core"
)

// RedisNotifier keeps notices in Redis, letting key expiry clear them.
type RedisNotifier struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ core.Notifier = (*RedisNotifier)(nil)

func NewRedisClient(conf core.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

func NewRedisNotifier(client *redis.Client, prefix string, ttl time.Duration) *RedisNotifier {
	return &RedisNotifier{client: client, prefix: prefix, ttl: ttl}
}

func (n *RedisNotifier) key(key string) string {
	return n.prefix + "notice:" + key
}

func (n *RedisNotifier) Notify(ctx context.Context, key, msg string) error {
	if err := n.client.Set(ctx, n.key(key), msg, n.ttl).Err(); err != nil {
		return errors.Wrap(err, "notice: redis set")
	}
	return nil
}

func (n *RedisNotifier) Current(ctx context.Context, key string) (string, error) {
	msg, err := n.client.Get(ctx, n.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "notice: redis get")
	}
	return msg, nil
}

// Healthy verifies the Redis connection.
func (n *RedisNotifier) Healthy(ctx context.Context) bool {
	return n.client.Ping(ctx).Err() == nil
}
