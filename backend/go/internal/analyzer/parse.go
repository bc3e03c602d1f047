package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/internal/ranking"
)

var (
	// ErrUnparseable 表示分析器的输出无法解析为资金条目。
	ErrUnparseable = errors.New("could not parse extracted data")
	// ErrNoFundingData 表示分析器没有返回任何内容。
	ErrNoFundingData = errors.New("no funding data extracted")
)

// 上传文档的来源标记，不是 URL，因此证据链接为 "#"。
const SourceUploadedDocument = "Uploaded Document"

// ParseDraft 将分析器输出解析为资金条目草稿。
// 输出可以带有 ```json 代码块标记；缺失的字段使用占位值。
func ParseDraft(raw, source string, now time.Time) (models.FundingItem, error) {
	if strings.TrimSpace(raw) == "" {
		return models.FundingItem{}, ErrNoFundingData
	}
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.TrimSpace(strings.ReplaceAll(clean, "```", ""))

	var data *extraction
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		return models.FundingItem{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if data == nil {
		return models.FundingItem{}, fmt.Errorf("%w: null payload", ErrUnparseable)
	}

	item := models.FundingItem{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Title:       orDefault(data.Title, "Unknown Scheme"),
		Amount:      orDefault(data.Amount, "Undisclosed"),
		Stage:       "Analyzed",
		Location:    "Extracted",
		Investor:    orDefault(data.Investor, "Unknown"),
		EvidenceURL: "#",
		Tags:        data.Tags,
		Type:        models.CategoryGovt,
		Description: data.Summary,
	}
	if strings.HasPrefix(source, "http") {
		item.EvidenceURL = source
	}
	if v, ok := ranking.ParseAmount(data.Amount); ok {
		item.AmountValue = v
	}
	if item.Tags == nil {
		item.Tags = []string{"Extracted"}
	}
	return item, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
