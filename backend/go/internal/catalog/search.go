package catalog

import (
	"strings"

	"FundingIntel/backend/go/internal/models"
)

const (
	// AllRegions 表示不按地区筛选。
	AllRegions = "All Regions"
	// AllTypes 表示不按投资方类型筛选。
	AllTypes = "All Types"
)

// Filter 对应搜索页的筛选条件。
type Filter struct {
	MinAmount    int64  `form:"minAmount" json:"minAmount"`
	Region       string `form:"region" json:"region"`
	InvestorType string `form:"type" json:"investorType"`
	VerifiedOnly bool   `form:"verified" json:"verifiedOnly"` // 界面开关，目录中的条目均视为已验证
}

// Regions 返回搜索页的地区选项。
func Regions() []string {
	return []string{
		AllRegions, "Pan India", "Tamil Nadu", "Karnataka", "Maharashtra",
		"Delhi NCR", "Telangana", "Kerala", "Gujarat", "Global",
	}
}

// InvestorTypes 返回搜索页的投资方类型选项。
func InvestorTypes() []string {
	types := []string{AllTypes}
	for _, c := range models.AllCategories() {
		types = append(types, string(c))
	}
	return types
}

// Search 按文本与筛选条件搜索目录。
// 文本为空时匹配全部；否则标题或任一标签包含该文本（不区分大小写）即匹配。
func (c *Catalog) Search(query string, f Filter) []models.FundingItem {
	q := strings.ToLower(strings.TrimSpace(query))
	return c.Filter(func(it models.FundingItem) bool {
		matchesQuery := q == "" ||
			strings.Contains(strings.ToLower(it.Title), q) ||
			it.HasTagContaining(q)
		matchesAmount := it.AmountValue >= f.MinAmount
		matchesRegion := f.Region == "" || f.Region == AllRegions || strings.Contains(it.Location, f.Region)
		matchesType := f.InvestorType == "" || f.InvestorType == AllTypes || string(it.Type) == f.InvestorType
		return matchesQuery && matchesAmount && matchesRegion && matchesType
	})
}
