package redis

import (
	"context"
	"time"
)

// Cache is a thin key-value view over the shared client, used for
// short-lived caching of provider responses.
type Cache struct{}

// NewCache returns a cache backed by the shared Redis client.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return Get(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return Set(ctx, key, value, ttl)
}
