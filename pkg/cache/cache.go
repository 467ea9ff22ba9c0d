package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL     = time.Minute
	requestTimeout = 2 * time.Second
)

// Cache is a small JSON cache over Redis. A Cache without a client is a
// no-op that always misses.
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(rdb *redis.Client, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{rdb: rdb, log: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON decodes the cached value for key into dst and reports a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix deletes keys starting with prefix using SCAN.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var cursor uint64
	for i := 0; i < 10; i++ {
		keys, next, err := c.rdb.Scan(ctx, cursor, prefix+"*", 1000).Result()
		if err != nil {
			c.log.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
			return
		}
		if len(keys) > 0 {
			pipe := c.rdb.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			_, _ = pipe.Exec(ctx)
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
