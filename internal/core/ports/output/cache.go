package ports

import (
	"context"
	"time"
)

// Cache is a best-effort key/value store for rendered responses. A missing
// key is reported as domain.ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
