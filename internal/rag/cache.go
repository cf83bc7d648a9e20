package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache fronts Service.Retrieve with a lookaside cache keyed by the
// query/filter combination. Optional: a Service with no Cache attached
// scores every call from scratch.
type Cache interface {
	Get(ctx context.Context, key string) ([]RetrievalResult, bool)
	Set(ctx context.Context, key string, results []RetrievalResult)
}

// RedisCache is the optional snippet cache backed by Redis, grounded on
// gomind/core's RedisClient namespacing pattern (goa-ai uses the same
// library for its own scratch state). Get/Set failures are treated as
// cache misses/no-ops rather than surfaced errors — a cold cache must
// never break retrieval.
type RedisCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisCache builds a RedisCache. namespace prefixes every key
// ("rag:cache:" + namespace + ":" + key) so multiple services can share
// one Redis instance without collisions.
func NewRedisCache(client *redis.Client, namespace string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, namespace: namespace, ttl: ttl}
}

func (c *RedisCache) fullKey(key string) string {
	return fmt.Sprintf("rag:cache:%s:%s", c.namespace, key)
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]RetrievalResult, bool) {
	raw, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var results []RetrievalResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *RedisCache) Set(ctx context.Context, key string, results []RetrievalResult) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.fullKey(key), data, c.ttl)
}
