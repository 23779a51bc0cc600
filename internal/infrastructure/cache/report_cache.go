// Package cache provides the Redis report cache and its PostgreSQL
// LISTEN/NOTIFY invalidation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"inventory/internal/domain/reports"
)

const (
	// keySet tracks every cached report key so invalidation needs no SCAN.
	keySet = "reports:keys"
	// generationKey is bumped by every invalidation.
	generationKey = "reports:generation"
)

// setIfGeneration stores ARGV[1] under KEYS[1] and tracks it in KEYS[2]
// only while KEYS[3] still holds ARGV[3]. ARGV[2] is the TTL in ms, 0 for none.
const setIfGeneration = `
if tonumber(redis.call('GET', KEYS[3]) or '0') ~= tonumber(ARGV[3]) then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
redis.call('SADD', KEYS[2], KEYS[1])
return 1
`

// redisClient is the subset of *redis.Client used by ReportCache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// ReportCache stores report rows as JSON in Redis.
type ReportCache struct {
	client redisClient
}

var _ reports.Cache = (*ReportCache)(nil)

// NewReportCache wraps a connected client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Connect opens a Redis client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Ping checks the Redis connection.
func (c *ReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get decodes key into dest. A missing key is a miss, not an error.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Generation returns the invalidation counter; a missing key is 0.
func (c *ReportCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", generationKey, err)
	}
	return gen, nil
}

// Set stores value under key for ttl unless an invalidation happened after
// generation was read. The check and the write run as one script.
func (c *ReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration, generation int64) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	stored, err := c.client.Eval(ctx, setIfGeneration,
		[]string{key, keySet, generationKey},
		raw, ttl.Milliseconds(), generation,
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis set %s: %w", key, err)
	}
	return stored == 1, nil
}

// InvalidateAll bumps the generation, then drops every tracked report key.
// Bumping first means a write racing with this call either fails its
// generation check or lands in the key set before it is read.
func (c *ReportCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump report generation: %w", err)
	}
	keys, err := c.client.SMembers(ctx, keySet).Result()
	if err != nil {
		return fmt.Errorf("list report keys: %w", err)
	}
	keys = append(keys, keySet)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete report keys: %w", err)
	}
	return nil
}
