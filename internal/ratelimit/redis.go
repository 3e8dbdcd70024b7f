package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "budgetsplit:ratelimit:"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisStore keeps windows in Redis so several server instances share limits.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a RedisStore on client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Hit implements Store. The counter and its expiry are set in one MULTI.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (Window, error) {
	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, redisKey)
		p.ExpireNX(ctx, redisKey, window)
		ttl = p.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Window{}, fmt.Errorf("failed to record hit: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		remaining = window
	}

	return Window{
		Count:   incr.Val(),
		ResetAt: time.Now().Add(remaining),
	}, nil
}
