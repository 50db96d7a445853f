// Package rediscache backs the response cache with Redis. The registry
// treats it as optional; every caller degrades gracefully when it is down.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) ports.Cache {
	return &cache{rdb: rdb}
}

func (c *cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}
	return val, nil
}

func (c *cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}
