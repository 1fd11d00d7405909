// Package cache provides a fail-safe Redis wrapper. Space lookups and
// refresh tokens go through it; when Redis is unreachable every call
// behaves like a miss so booking traffic keeps flowing against MySQL
// alone.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client and swallows connectivity errors. A nil
// Client is usable and behaves like an always-empty cache, which keeps
// service constructors testable without a Redis instance.
type Client struct {
	client *redis.Client
}

// New connects to the given Redis instance.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the cached value, or nil on a miss or when Redis is
// unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss.
		return nil, nil
	}
	return res, nil
}

// Set stores a value with a TTL. Redis errors are dropped; the entry
// simply stays uncached.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes a key. Used to invalidate space entries after a claim,
// release, or admin update; Redis errors are dropped.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}
