// Package ranking 按资金证据的充分程度为搜索结果打分排序。
package ranking

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/logger"
)

// DefaultLimit 是排序后保留的结果数量。
const DefaultLimit = 10

// Explanation 说明排序依据。
const Explanation = "Ranked by strength of funding evidence"

const weakSignal = "Weak funding signal"

// Evidence 是一个结果中可作为资金证据的字段。
type Evidence struct {
	Amount     string
	Investors  string
	Stage      string
	Sector     string
	Location   string
	Date       string
	Confidence float64
}

// Score 计算信息分并给出理由。
func Score(e Evidence) (float64, string) {
	var score float64
	var reasons []string
	add := func(present bool, points float64, reason string) {
		if present {
			score += points
			reasons = append(reasons, reason)
		}
	}
	add(e.Amount != "", 3, "Has funding amount")
	add(e.Investors != "", 3, "Mentions investors")
	add(e.Stage != "", 3, "Startup stage found")
	add(e.Sector != "", 2, "Sector identified")
	add(e.Location != "", 3, "Location present")
	add(e.Date != "", 4, "Date included")

	score += e.Confidence * 2
	if e.Confidence > 0 {
		reasons = append(reasons, "High confidence score ("+strconv.FormatFloat(e.Confidence, 'f', -1, 64)+")")
	}
	if len(reasons) == 0 {
		return score, weakSignal
	}
	return score, strings.Join(reasons, ", ")
}

// EvidenceFromItem 从资金条目中提取证据，占位值不计入。
func EvidenceFromItem(it models.FundingItem, confidence float64) Evidence {
	e := Evidence{
		Amount:     placeholder(it.Amount, "Undisclosed"),
		Investors:  placeholder(it.Investor, "Unknown"),
		Stage:      placeholder(it.Stage, "Analyzed"),
		Location:   placeholder(it.Location, "Extracted"),
		Date:       it.Deadline,
		Confidence: confidence,
	}
	for _, tag := range it.Tags {
		if tag != "" && tag != "Extracted" {
			e.Sector = tag
			break
		}
	}
	return e
}

func placeholder(v, marker string) string {
	if v == marker {
		return ""
	}
	return v
}

// IntentClassifier 判断一段文本是否是资金相关信息。
type IntentClassifier interface {
	IsFunding(ctx context.Context, title, snippet string) (bool, error)
}

// Ranked 是打分后的条目。
type Ranked struct {
	models.FundingItem
	InfoScore float64 `json:"infoScore"`
	Reasoning string  `json:"reasoning"`
}

// Ranker 对候选条目过滤、打分并截取前 limit 个。
// 配置了分类器时，被判定为非资金信息的条目会被剔除，确认的条目置信度为 1；
// 分类器出错时保留条目，置信度为 0。
type Ranker struct {
	classifier IntentClassifier
	limit      int
	log        *logger.Logger
}

// Option 配置 Ranker。
type Option func(*Ranker)

// WithClassifier 启用资金意图分类。
func WithClassifier(c IntentClassifier) Option {
	return func(r *Ranker) { r.classifier = c }
}

// WithLimit 修改保留的结果数量。
func WithLimit(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.limit = n
		}
	}
}

// NewRanker 创建排序器。
func NewRanker(log *logger.Logger, opts ...Option) *Ranker {
	if log == nil {
		log = logger.Discard()
	}
	r := &Ranker{limit: DefaultLimit, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank 返回按信息分从高到低排列的前 limit 个条目，以及过滤后的命中总数。
// 分数相同的条目保持输入顺序。
func (r *Ranker) Rank(ctx context.Context, items []models.FundingItem) ([]Ranked, int) {
	ranked := make([]Ranked, 0, len(items))
	for _, it := range items {
		confidence := 0.0
		if r.classifier != nil {
			funding, err := r.classifier.IsFunding(ctx, it.Title, it.Description)
			switch {
			case err != nil:
				r.log.WithError(err).WithField("item", it.ID).Warn("资金意图分类失败，保留条目")
			case !funding:
				continue
			default:
				confidence = 1
			}
		}
		score, reason := Score(EvidenceFromItem(it, confidence))
		ranked = append(ranked, Ranked{FundingItem: it.Clone(), InfoScore: score, Reasoning: reason})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].InfoScore > ranked[j].InfoScore })

	total := len(ranked)
	if len(ranked) > r.limit {
		ranked = ranked[:r.limit]
	}
	return ranked, total
}
