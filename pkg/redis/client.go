package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = goredis.Nil

// Client wraps the Redis connection used for transit-API response caching.
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis with retry.
func NewClient(addr string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err == nil {
			cancel()
			log.Println("Connected to Redis")
			return &Client{rdb: rdb}, nil
		}
		cancel()
		log.Printf("Waiting for Redis... (%d/20)", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("redis: failed to connect after 20 attempts")
}

// CacheLinePositions stores a serialised position snapshot for a line code.
func (c *Client) CacheLinePositions(ctx context.Context, lineCode int64, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("positions:%d", lineCode), data, ttl).Err()
}

// CachedLinePositions returns the cached snapshot for a line code.
// Returns ErrCacheMiss when absent.
func (c *Client) CachedLinePositions(ctx context.Context, lineCode int64) ([]byte, error) {
	return c.rdb.Get(ctx, fmt.Sprintf("positions:%d", lineCode)).Bytes()
}

// CacheRouteSearch stores a serialised search result for a query term.
func (c *Client) CacheRouteSearch(ctx context.Context, query string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, "routes:search:"+query, data, ttl).Err()
}

// CachedRouteSearch returns the cached search result for a query term.
// Returns ErrCacheMiss when absent.
func (c *Client) CachedRouteSearch(ctx context.Context, query string) ([]byte, error) {
	return c.rdb.Get(ctx, "routes:search:"+query).Bytes()
}

// Close tears down the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }
