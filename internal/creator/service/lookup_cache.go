package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisLookupCache caches positive lookup results in Redis. Failures are
// logged and swallowed: the cache never decides a lookup's outcome.
type RedisLookupCache struct {
	client goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisLookupCache(client goredis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisLookupCache {
	return &RedisLookupCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisLookupCache) key(query string) string {
	return "vedo:lookup:" + query
}

func (c *RedisLookupCache) Get(ctx context.Context, query string) (*PublicCreator, bool) {
	raw, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		if c.logger != nil && !errors.Is(err, goredis.Nil) {
			c.logger.WarnContext(ctx, "lookup cache get failed", "error", err)
		}
		return nil, false
	}
	var result PublicCreator
	if err := json.Unmarshal(raw, &result); err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "lookup cache entry corrupt", "error", err)
		}
		return nil, false
	}
	return &result, true
}

func (c *RedisLookupCache) Set(ctx context.Context, query string, result *PublicCreator) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(query), raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "lookup cache set failed", "error", err)
	}
}
