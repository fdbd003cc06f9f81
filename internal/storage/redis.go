package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisPayloadCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPayloadCache(client *redis.Client, ttl time.Duration) *RedisPayloadCache {
	return &RedisPayloadCache{Client: client, TTL: ttl}
}

func (c *RedisPayloadCache) PayloadKey(source string) string {
	return "catalog:payload:" + source
}

// Get returns ok=false without an error when nothing is cached for source.
func (c *RedisPayloadCache) Get(ctx context.Context, source string) ([]byte, bool, error) {
	payload, err := c.Client.Get(ctx, c.PayloadKey(source)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *RedisPayloadCache) Set(ctx context.Context, source string, payload []byte) error {
	return c.Client.Set(ctx, c.PayloadKey(source), payload, c.TTL).Err()
}
