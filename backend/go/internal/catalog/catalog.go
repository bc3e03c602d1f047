package catalog

import (
	"errors"
	"fmt"

	"FundingIntel/backend/go/internal/models"
)

// ErrDuplicateID 表示目录中存在重复或为空的条目 ID。
var ErrDuplicateID = errors.New("duplicate funding item id")

// Catalog 是只读的资金目录。创建后内容不再变化，所有读取方法都返回副本。
type Catalog struct {
	items []models.FundingItem
	index map[string]int
}

// New 校验条目 ID 的唯一性并构建目录。
func New(items []models.FundingItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.FundingItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: empty id for %q", ErrDuplicateID, it.Title)
		}
		if _, exists := c.index[it.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it.Clone())
	}
	return c, nil
}

// Default 返回内置的资金目录。
func Default() *Catalog {
	c, err := New(builtinItems())
	if err != nil {
		panic(err)
	}
	return c
}

// Len 返回条目数量。
func (c *Catalog) Len() int { return len(c.items) }

// All 按加载顺序返回全部条目。
func (c *Catalog) All() []models.FundingItem {
	return models.CloneItems(c.items)
}

// Get 按 ID 查找条目。
func (c *Catalog) Get(id string) (models.FundingItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.FundingItem{}, false
	}
	return c.items[i].Clone(), true
}

// Filter 返回满足条件的条目，保持目录顺序。
func (c *Catalog) Filter(pred func(models.FundingItem) bool) []models.FundingItem {
	out := []models.FundingItem{}
	for _, it := range c.items {
		if pred(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// CountByCategory 统计每个类别的条目数量。
func (c *Catalog) CountByCategory() map[models.Category]int {
	counts := make(map[models.Category]int, len(models.AllCategories()))
	for _, it := range c.items {
		counts[it.Type]++
	}
	return counts
}
