package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mysqldb "FundingIntel/backend/go/internal/database/mysql"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry 是 GormKV 使用的表结构。
type Entry struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName 指定表名。
func (Entry) TableName() string { return "funding_kv" }

// GormKV 把键值保存在关系数据库中，值以 JSON 列存储。
type GormKV struct {
	db *gorm.DB
}

// NewGorm 创建存储并自动迁移表结构。
func NewGorm(ctx context.Context, db *gorm.DB) (*GormKV, error) {
	if err := db.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("迁移 funding_kv 表失败: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := g.db.WithContext(ctx).Where("`key` = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(e.Value), true, nil
}

// Set 要求 value 为合法 JSON。
func (g *GormKV) Set(ctx context.Context, key, value string) error {
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("%w: value for %q is not JSON", ErrInvalidValue, key)
	}
	e := Entry{Key: key, Value: datatypes.JSON(value)}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

// Ping 检查数据库连接。
func (g *GormKV) Ping(ctx context.Context) error {
	return mysqldb.HealthCheck(ctx, g.db)
}
