package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 带统一 TTL 的键值缓存，包装注入的 Redis 客户端
// 账号角色与订阅计划等外部能力数据经由它短暂缓存
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get 读取缓存，未命中时 ok 为 false 且不报错
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *Cache) Set(ctx context.Context, key, value string) error {
	return c.rdb.Set(ctx, key, value, c.ttl).Err()
}

// Invalidate 主动失效若干键，能力数据变更后调用
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// TTL 返回缓存的统一有效期
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
