package models

import (
	"strings"
	"time"
)

// DeadlineRolling 是滚动申请（无固定截止日期）的哨兵值。
const DeadlineRolling = "Rolling"

// FundingItem 表示资金目录中的一条机会（政府计划、风投、天使或补贴）。
// 目录加载后即不可变，对外总是返回副本。
type FundingItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Amount      string   `json:"amount"`      // 展示用金额，例如 "₹1,50,000"
	AmountValue int64    `json:"amountValue"` // 排序与筛选用的数值金额
	Stage       string   `json:"stage"`
	Location    string   `json:"location"`
	Investor    string   `json:"investor"`
	EvidenceURL string   `json:"evidence_url"`
	Tags        []string `json:"tags"`
	Type        Category `json:"type"`
	Deadline    string   `json:"deadline,omitempty"`    // 日期字符串 (2006-01-02) 或 "Rolling" 等描述
	Description string   `json:"description,omitempty"` // 可选的说明文字
}

// Clone 返回深拷贝，调用方修改标签不会影响原对象。
func (f FundingItem) Clone() FundingItem {
	c := f
	if f.Tags != nil {
		c.Tags = append([]string(nil), f.Tags...)
	}
	return c
}

// HasTag 判断是否包含完全相同的标签（区分大小写）。
func (f FundingItem) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasTagContaining 判断是否存在包含给定子串的标签（不区分大小写）。
func (f FundingItem) HasTagContaining(sub string) bool {
	sub = strings.ToLower(sub)
	for _, t := range f.Tags {
		if strings.Contains(strings.ToLower(t), sub) {
			return true
		}
	}
	return false
}

// IsRolling 判断截止日期是否为滚动申请。
func (f FundingItem) IsRolling() bool {
	return strings.EqualFold(f.Deadline, DeadlineRolling)
}

// DeadlineTime 解析截止日期；没有截止日期或无法解析（例如 "Open Round"）时返回 false。
func (f FundingItem) DeadlineTime() (time.Time, bool) {
	if f.Deadline == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, f.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CloneItems 深拷贝一组条目。nil 保持为 nil。
func CloneItems(items []FundingItem) []FundingItem {
	if items == nil {
		return nil
	}
	out := make([]FundingItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
