// Package ordercache keeps serialized order views in Redis.
package ordercache

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 5 * time.Minute

var _ ports.OrderCache = (*RedisOrderCache)(nil)

type RedisOrderCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisOrderCache(client redis.Cmdable, ttl time.Duration) *RedisOrderCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisOrderCache{client: client, ttl: ttl}
}

func (c *RedisOrderCache) Get(ctx context.Context, id kernel.UUID) ([]byte, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

// Set stores data with the base TTL plus up to a tenth of jitter so entries
// written together do not expire together.
func (c *RedisOrderCache) Set(ctx context.Context, id kernel.UUID, data []byte) error {
	ttl := c.ttl
	if spread := int64(c.ttl / 10); spread > 0 {
		ttl += time.Duration(rand.Int64N(spread))
	}

	if err := c.client.Set(ctx, key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisOrderCache) Invalidate(ctx context.Context, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func key(id kernel.UUID) string {
	return "order:view:" + id.String()
}
