package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Freshness windows. The stats window matches the 5 minute staleTime the
// dashboard has always used; list pages turn over faster.
const (
	ListFreshness  = 30 * time.Second
	StatsFreshness = 5 * time.Minute
)

// Cache is a redis-backed query cache with explicit invalidation keys.
// Entries are JSON-encoded query results served inside their freshness
// window without re-querying the database.
type Cache struct {
	rdb *redis.Client
}

// New creates a cache client and verifies connectivity.
func New(addr, password string, db int) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Get loads a cached entry into dest. Returns false on a miss; a decode
// failure is treated as a miss so a poisoned entry can never wedge a page.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// Set stores a JSON-encoded entry under key for the given freshness window.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.rdb.Set(ctx, key, payload, ttl).Err()
}

// Invalidate removes every key matching the pattern, e.g. "products:*"
// after a product mutation.
func (c *Cache) Invalidate(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Invalidation key families. Mutations invalidate whole families so a
// stale page can never outlive the row it came from.
const (
	ProductKeyPrefix  = "products:"
	OrderKeyPrefix    = "orders:"
	DashboardStatsKey = "stats:dashboard"
	ProductStocksKey  = "products:stats:stock"
	CustomerKeyPrefix = "customers:"
)

// ProductListKey identifies one page of the product list by its full
// logical request.
func ProductListKey(page, limit int, search, status string) string {
	return fmt.Sprintf("%slist:%d:%d:%s:%s", ProductKeyPrefix, page, limit, search, status)
}

// OrderListKey identifies one page of the order list.
func OrderListKey(page, limit int, search, status, payment string) string {
	return fmt.Sprintf("%slist:%d:%d:%s:%s:%s", OrderKeyPrefix, page, limit, search, status, payment)
}

// CustomerListKey identifies one page of the customer list.
func CustomerListKey(page, limit int, search string) string {
	return fmt.Sprintf("%slist:%d:%d:%s", CustomerKeyPrefix, page, limit, search)
}
