package analyzer

import (
	"context"

	"FundingIntel/backend/go/internal/models"
)

// DocumentReader 从上传的文档中抽取资金信息，返回 JSON 文本。
type DocumentReader interface {
	ReadDocument(ctx context.Context, data []byte, mimeType string) (string, error)
}

// URLReader 从网页中抽取资金信息，返回 JSON 文本。
type URLReader interface {
	ReadURL(ctx context.Context, url string) (string, error)
}

// InvestorReader 根据名称生成投资人画像。
type InvestorReader interface {
	LookupInvestor(ctx context.Context, name string) (models.InvestorProfile, error)
}

// DocumentArchive 保存用户上传的原始文档，返回对象键。
type DocumentArchive interface {
	Archive(ctx context.Context, name string, data []byte, mimeType string) (string, error)
}
