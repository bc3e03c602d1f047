package redis

import (
	"context"
	"fmt"

	"FundingIntel/backend/go/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewClient 根据配置创建 Redis 客户端，并用 Ping 确认连接可用。
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("未配置 Redis 地址")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("无法连接到 Redis: %w", err)
	}
	return rdb, nil
}

// HealthCheck 检查 Redis 连接的健康状况。
func HealthCheck(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return fmt.Errorf("Redis 客户端未初始化")
	}
	return rdb.Ping(ctx).Err()
}
