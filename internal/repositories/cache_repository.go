package repositories

import (
	"context"
	"time"
)

// CacheRepository is the JSON cache used for read-mostly aggregates.
type CacheRepository interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
