package storage

import (
	"context"
	"errors"

	redisdb "FundingIntel/backend/go/internal/database/redis"

	"github.com/go-redis/redis/v8"
)

// RedisKV 把键值保存在 Redis 中，所有键带统一前缀。
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedis 创建 Redis 存储。
func NewRedis(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

// Ping 检查 Redis 连接。
func (r *RedisKV) Ping(ctx context.Context) error {
	return redisdb.HealthCheck(ctx, r.client)
}
