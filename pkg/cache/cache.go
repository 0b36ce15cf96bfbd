// Package cache wraps a shared Redis client. Vendra uses it for low-stock
// alert dedup and as the connection behind the Redis queue driver; store
// reads are never served from cache so the API stays strictly consistent.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vendralabs/vendra/config"
)

var rdb *redis.Client

// Connect establishes the Redis connection and verifies it with a ping.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: connect %s: %w", config.RedisAddr(), err)
	}

	rdb = client
	return nil
}

// Client returns the shared Redis client, or nil when Connect has not run.
func Client() *redis.Client { return rdb }

// Get reads key into dest. Returns false on miss, connection absence, or
// decode failure.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}

	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores value under key with a TTL. A nil client is a no-op so callers
// don't need to care whether Redis is configured.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, data, ttl).Err()
}

// SetNX stores value only if key does not already exist. Returns true when
// the key was set. Used to dedup low-stock alerts per product.
func SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	return rdb.SetNX(ctx, key, data, ttl).Result()
}

// Del removes keys.
func Del(ctx context.Context, keys ...string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
