package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"FundingIntel/backend/go/pkg/logger"
)

// errCorrupt 表示存储文件不是合法的 JSON 对象。
var errCorrupt = errors.New("storage file is corrupt")

// FileKV 把全部键值保存在一个 JSON 对象文件中，每次写入都整体落盘。
type FileKV struct {
	path string
	log  *logger.Logger

	mu sync.Mutex
}

// NewFile 创建基于文件的存储，必要时创建父目录。文件可以不存在。
func NewFile(path string, log *logger.Logger) (*FileKV, error) {
	if log == nil {
		log = logger.Discard()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建存储目录失败: %w", err)
		}
	}
	return &FileKV{path: path, log: log}, nil
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	switch {
	case errors.Is(err, errCorrupt):
		// 损坏的文件改名保留为 .bak，再以新内容重建
		backup := f.path + ".bak"
		if rerr := os.Rename(f.path, backup); rerr != nil {
			return fmt.Errorf("备份损坏的存储文件失败: %w", rerr)
		}
		f.log.WithError(err).WithField("backup", backup).Warn("存储文件损坏，已备份并重建，其他键的旧值丢失")
		data = map[string]string{}
	case err != nil:
		return err
	}
	data[key] = value
	return f.save(data)
}

func (f *FileKV) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取存储文件失败: %w", err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	return data, nil
}

func (f *FileKV) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("写入存储文件失败: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("替换存储文件失败: %w", err)
	}
	return nil
}
