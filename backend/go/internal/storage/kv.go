// Package storage 提供收藏夹与引导标记使用的键值存储。
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidValue 表示写入的值不符合后端要求（例如 GormKV 要求合法 JSON）。
var ErrInvalidValue = errors.New("invalid storage value")

// KV 是字符串键值存储。Get 在键不存在时返回 ok=false 且 err=nil。
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger 由依赖远程服务的后端实现，用于就绪检查。
type Pinger interface {
	Ping(ctx context.Context) error
}

// MemoryKV 是进程内的 KV 实现。
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory 创建空的内存存储。
func NewMemory() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
