package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"FundingIntel/backend/go/internal/config"
	mysqldb "FundingIntel/backend/go/internal/database/mysql"
	"FundingIntel/backend/go/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// exerciseKV 对任意 KV 实现执行相同的读写检查。
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	key := "test_" + uuid.NewString()

	if _, ok, err := kv.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get(missing) = ok:%v err:%v", ok, err)
	}
	if err := kv.Set(ctx, key, `["a"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := kv.Set(ctx, key, `["a","b"]`); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	v, ok, err := kv.Get(ctx, key)
	if err != nil || !ok || v != `["a","b"]` {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	kv, err := NewFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	exerciseKV(t, kv)

	reopened, _ := NewFile(path, nil)
	if err := reopened.Set(context.Background(), "flag", "true"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := kv.Get(context.Background(), "flag"); !ok || v != "true" {
		t.Errorf("value not visible through another handle: %q %v", v, ok)
	}
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	kv, _ := NewFile(path, nil)
	if _, _, err := kv.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected read error for corrupt file")
	}
	if err := kv.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Set() should overwrite a corrupt file: %v", err)
	}
	if v, ok, err := kv.Get(context.Background(), "k"); err != nil || !ok || v != "v" {
		t.Errorf("Get() after repair = %q %v %v", v, ok, err)
	}
	backup, err := os.ReadFile(path + ".bak")
	if err != nil || string(backup) != "{broken" {
		t.Errorf("corrupt contents should be kept in .bak, got %q, %v", backup, err)
	}
}

func TestOpen_SelectsDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = DriverMemory
	kv, closer, err := Open(context.Background(), cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	if _, ok := kv.(*MemoryKV); !ok {
		t.Errorf("Open(memory) = %T", kv)
	}

	cfg.Storage.Driver = DriverFile
	cfg.Storage.Path = filepath.Join(t.TempDir(), "ls.json")
	kv, _, err = Open(context.Background(), cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kv.(*FileKV); !ok {
		t.Errorf("Open(file) = %T", kv)
	}

	cfg.Storage.Driver = "etcd"
	if _, _, err := Open(context.Background(), cfg, logger.Discard()); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("FUNDING_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FUNDING_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	kv := NewRedis(rdb, "funding_test:")
	if err := kv.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	exerciseKV(t, kv)
}

func TestGormKV(t *testing.T) {
	dsn := os.Getenv("FUNDING_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("FUNDING_TEST_MYSQL_DSN not set")
	}
	ctx := context.Background()
	db, err := mysqldb.Open(ctx, dsn, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer mysqldb.Close(db)

	kv, err := NewGorm(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	exerciseKV(t, kv)
	if err := kv.Set(ctx, "bad", "not json"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
}
