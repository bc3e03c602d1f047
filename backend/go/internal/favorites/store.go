package favorites

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/internal/storage"
	"FundingIntel/backend/go/pkg/logger"
)

// StorageKey 是收藏夹在存储中的键。
const StorageKey = "funding_saved_items"

// SortMode 是收藏页的排序方式。
type SortMode string

const (
	SortRecent   SortMode = "recent"   // 按收藏顺序
	SortAmount   SortMode = "amount"   // 金额从高到低
	SortDeadline SortMode = "deadline" // 截止日期从近到远，无日期的排在最后
)

// ParseSortMode 解析排序参数，无法识别时回退到 SortRecent。
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortAmount, SortDeadline:
		return SortMode(s)
	default:
		return SortRecent
	}
}

// Groups 按资金来源把收藏分为政府与私人两组。
type Groups struct {
	Govt    []models.FundingItem `json:"govt"`
	Private []models.FundingItem `json:"private"`
}

// Store 是持久化的收藏夹。每次修改后整体写回存储；
// 读写失败只记录日志，不向调用方报错。
type Store struct {
	kv  storage.KV
	log *logger.Logger

	// writeMu 在释放 mu 之前获取，保证写回顺序与修改顺序一致。
	writeMu sync.Mutex

	mu    sync.RWMutex
	items []models.FundingItem
}

// NewStore 创建收藏夹，需要调用 Load 读取已有数据。
func NewStore(kv storage.KV, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{kv: kv, log: log, items: []models.FundingItem{}}
}

// Load 从存储读取收藏。缺失、损坏或读取失败时得到空收藏夹。
func (s *Store) Load(ctx context.Context) {
	items := []models.FundingItem{}
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	switch {
	case err != nil:
		s.log.WithError(err).Warn("读取收藏夹失败，使用空收藏夹")
	case !ok:
	default:
		var decoded []models.FundingItem
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			s.log.WithError(err).Warn("收藏夹数据损坏，使用空收藏夹")
		} else if decoded != nil {
			items = decoded
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Toggle 收藏或取消收藏条目（按 ID 判断），返回操作后的收藏状态。
func (s *Store) Toggle(ctx context.Context, item models.FundingItem) bool {
	s.mu.Lock()
	saved := true
	next := make([]models.FundingItem, 0, len(s.items)+1)
	for _, it := range s.items {
		if it.ID == item.ID {
			saved = false
			continue
		}
		next = append(next, it)
	}
	if saved {
		next = append(next, item.Clone())
	}
	s.items = next
	snapshot := models.CloneItems(next)
	s.writeMu.Lock()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.writeMu.Unlock()
	return saved
}

// IsSaved 判断条目是否已收藏。
func (s *Store) IsSaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Items 按收藏顺序返回全部条目。
func (s *Store) Items() []models.FundingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneItems(s.items)
}

// Sorted 按指定方式排序返回收藏。
func (s *Store) Sorted(mode SortMode) []models.FundingItem {
	items := s.Items()
	switch mode {
	case SortAmount:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].AmountValue > items[j].AmountValue
		})
	case SortDeadline:
		sort.SliceStable(items, func(i, j int) bool {
			ti, okI := items[i].DeadlineTime()
			tj, okJ := items[j].DeadlineTime()
			switch {
			case okI && okJ:
				return ti.Before(tj)
			default:
				return okI && !okJ
			}
		})
	}
	return items
}

// Grouped 将排序后的收藏按类别分组：政府计划与补贴为一组，风投与天使为一组。
func (s *Store) Grouped(mode SortMode) Groups {
	g := Groups{Govt: []models.FundingItem{}, Private: []models.FundingItem{}}
	for _, it := range s.Sorted(mode) {
		if it.Type.IsPublic() {
			g.Govt = append(g.Govt, it)
		} else {
			g.Private = append(g.Private, it)
		}
	}
	return g
}

// TotalLakhs 返回收藏总金额，单位为十万卢比。
func (s *Store) TotalLakhs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, it := range s.items {
		total += it.AmountValue
	}
	return float64(total) / 100000
}

// UpcomingDeadlines 统计截止日期晚于 now 的收藏数量。
func (s *Store) UpcomingDeadlines(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		if t, ok := it.DeadlineTime(); ok && t.After(now) {
			n++
		}
	}
	return n
}

func (s *Store) persist(ctx context.Context, items []models.FundingItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		s.log.WithError(err).Error("序列化收藏夹失败")
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		s.log.WithError(err).Warn("写入收藏夹失败，仅保留内存中的修改")
	}
}
