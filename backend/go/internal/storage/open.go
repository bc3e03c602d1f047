package storage

import (
	"context"
	"fmt"

	"FundingIntel/backend/go/internal/config"
	mysqldb "FundingIntel/backend/go/internal/database/mysql"
	redisdb "FundingIntel/backend/go/internal/database/redis"
	"FundingIntel/backend/go/pkg/logger"
)

// 支持的存储驱动。
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"
)

// Open 根据配置选择存储驱动，返回的 closer 用于释放连接。
func Open(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (KV, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case DriverMemory:
		return NewMemory(), noop, nil

	case DriverFile, "":
		kv, err := NewFile(cfg.Storage.Path, log)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil

	case DriverRedis:
		rdb, err := redisdb.NewClient(ctx, &cfg.Databases.Redis)
		if err != nil {
			return nil, noop, err
		}
		closer := func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Warn("关闭 Redis 连接失败")
			}
		}
		return NewRedis(rdb, cfg.Storage.KeyPrefix), closer, nil

	case DriverMySQL:
		db, err := mysqldb.Open(ctx, mysqldb.DSN(&cfg.Databases.MySQL), &cfg.Databases.MySQL)
		if err != nil {
			return nil, noop, err
		}
		closer := func() {
			if err := mysqldb.Close(db); err != nil {
				log.WithError(err).Warn("关闭 MySQL 连接失败")
			}
		}
		kv, err := NewGorm(ctx, db)
		if err != nil {
			closer()
			return nil, noop, err
		}
		return kv, closer, nil

	default:
		return nil, noop, fmt.Errorf("未知的存储驱动: %q", cfg.Storage.Driver)
	}
}
