package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/internal/storage"
)

// brokenKV 的读写总是失败。
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk gone") }

func mustGet(t *testing.T, id string) models.FundingItem {
	t.Helper()
	it, ok := catalog.Default().Get(id)
	if !ok {
		t.Fatalf("catalog entry %s missing", id)
	}
	return it
}

func TestToggle_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := NewStore(kv, nil)
	s.Load(ctx)
	item := mustGet(t, "1")

	if !s.Toggle(ctx, item) || !s.IsSaved("1") {
		t.Fatal("first toggle should save")
	}
	if s.Toggle(ctx, item) || s.IsSaved("1") {
		t.Fatal("second toggle should remove")
	}
	if len(s.Items()) != 0 {
		t.Errorf("items = %v, want empty", s.Items())
	}
	raw, ok, _ := kv.Get(ctx, StorageKey)
	if !ok || raw != "[]" {
		t.Errorf("persisted = %q, want []", raw)
	}
}

func TestLoad_RestoresPersistedItems(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	first := NewStore(kv, nil)
	first.Load(ctx)
	first.Toggle(ctx, mustGet(t, "3"))
	first.Toggle(ctx, mustGet(t, "8"))

	second := NewStore(kv, nil)
	second.Load(ctx)
	items := second.Items()
	if len(items) != 2 || items[0].ID != "3" || items[1].ID != "8" {
		t.Errorf("restored %v", items)
	}
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	corrupt := storage.NewMemory()
	_ = corrupt.Set(ctx, StorageKey, "{not an array")
	nullValue := storage.NewMemory()
	_ = nullValue.Set(ctx, StorageKey, "null")

	for name, kv := range map[string]storage.KV{
		"missing": storage.NewMemory(),
		"corrupt": corrupt,
		"null":    nullValue,
		"broken":  brokenKV{},
	} {
		t.Run(name, func(t *testing.T) {
			s := NewStore(kv, nil)
			s.Load(ctx)
			if items := s.Items(); items == nil || len(items) != 0 {
				t.Errorf("Items() = %#v, want empty", items)
			}
		})
	}
}

func TestToggle_WriteFailureIsSilent(t *testing.T) {
	s := NewStore(brokenKV{}, nil)
	s.Load(context.Background())
	if !s.Toggle(context.Background(), mustGet(t, "2")) {
		t.Fatal("toggle should still succeed in memory")
	}
	if !s.IsSaved("2") {
		t.Error("in-memory state lost after write failure")
	}
}

func TestSortedAndGrouped(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), nil)
	s.Load(ctx)
	for _, id := range []string{"10", "1", "ev-4", "8", "20"} {
		s.Toggle(ctx, mustGet(t, id))
	}

	ids := func(items []models.FundingItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.ID
		}
		return out
	}
	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortRecent, []string{"10", "1", "ev-4", "8", "20"}},
		{SortAmount, []string{"10", "8", "ev-4", "1", "20"}},
		{SortDeadline, []string{"8", "1", "10", "ev-4", "20"}},
	}
	for _, tt := range tests {
		got := ids(s.Sorted(tt.mode))
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Sorted(%s) = %v, want %v", tt.mode, got, tt.want)
				break
			}
		}
	}

	g := s.Grouped(SortRecent)
	if len(g.Govt) != 3 || len(g.Private) != 2 {
		t.Errorf("groups = %d/%d, want 3/2", len(g.Govt), len(g.Private))
	}

	// 150000000 + 150000 + 2500000 + 5000000 + 0
	if got := s.TotalLakhs(); got != 1576.5 {
		t.Errorf("TotalLakhs() = %v, want 1576.5", got)
	}
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	if got := s.UpcomingDeadlines(now); got != 1 {
		t.Errorf("UpcomingDeadlines() = %d, want 1", got)
	}
}

func TestParseSortMode(t *testing.T) {
	if ParseSortMode("amount") != SortAmount || ParseSortMode("deadline") != SortDeadline || ParseSortMode("bogus") != SortRecent {
		t.Error("ParseSortMode mapping is wrong")
	}
}

// gatedKV 的第一次写入阻塞到 release 关闭，用于制造并发写回。
type gatedKV struct {
	*storage.MemoryKV
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedKV) Set(ctx context.Context, key, value string) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.MemoryKV.Set(ctx, key, value)
}

func TestToggle_ConcurrentWritesKeepOrder(t *testing.T) {
	ctx := context.Background()
	kv := &gatedKV{MemoryKV: storage.NewMemory(), entered: make(chan struct{}), release: make(chan struct{})}
	s := NewStore(kv, nil)
	s.Load(ctx)
	a, b := mustGet(t, "3"), mustGet(t, "8")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Toggle(ctx, a)
	}()
	<-kv.entered
	go func() {
		defer wg.Done()
		s.Toggle(ctx, b)
	}()
	time.Sleep(50 * time.Millisecond)
	close(kv.release)
	wg.Wait()

	raw, _, _ := kv.Get(ctx, StorageKey)
	var persisted []models.FundingItem
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatal(err)
	}
	if len(persisted) != len(s.Items()) || len(persisted) != 2 {
		t.Errorf("persisted %d items, memory %d, want 2 and 2", len(persisted), len(s.Items()))
	}
}
