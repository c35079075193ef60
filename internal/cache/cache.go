package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache é um read-through em Redis para as configurações de agenda
// (horário de funcionamento, expediente). Todo método aceita receiver
// nil: sem REDIS_URL a API funciona direto no banco.
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
	ttl time.Duration
}

func New(redisURL string, log *zap.Logger) *Cache {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, cache disabled", zap.Error(err))
		return nil
	}

	return &Cache{
		rdb: redis.NewClient(opts),
		log: log,
		ttl: 5 * time.Minute,
	}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(b, dest); err != nil {
		c.log.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
