package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrEmptyInput 表示输入为空，不会发起分析。
	ErrEmptyInput = errors.New("empty analysis input")
	// ErrDocumentFailed 表示文档分析器调用失败。
	ErrDocumentFailed = errors.New("failed to analyze document")
	// ErrURLFailed 表示网页分析器调用失败。
	ErrURLFailed = errors.New("failed to scan website")
	// ErrInvestorNotFound 表示投资人分析器调用失败。
	ErrInvestorNotFound = errors.New("could not find investor data")
)

// Service 组合三种分析器，并把原始输出转换为资金条目草稿。
type Service struct {
	documents DocumentReader
	urls      URLReader
	investors InvestorReader
	archive   DocumentArchive
	log       *logger.Logger
	now       func() time.Time
}

// Option 配置 Service 的可选项。
type Option func(*Service)

// WithArchive 设置上传文档的归档位置。
func WithArchive(a DocumentArchive) Option {
	return func(s *Service) { s.archive = a }
}

// WithClock 替换时钟，用于生成确定的草稿 ID。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService 创建分析服务。
func NewService(docs DocumentReader, urls URLReader, investors InvestorReader, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		documents: docs,
		urls:      urls,
		investors: investors,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractDocument 分析上传的文档。mimeType 为空时根据内容嗅探。
func (s *Service) ExtractDocument(ctx context.Context, name string, data []byte, mimeType string) (models.FundingItem, error) {
	if len(data) == 0 {
		return models.FundingItem{}, ErrEmptyInput
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(data).String()
	}
	log := s.log.WithPayload(map[string]interface{}{"file": name, "mime": mimeType, "size": len(data)})

	if s.archive != nil {
		key, err := s.archive.Archive(ctx, name, data, mimeType)
		if err != nil {
			log.WithError(err).Warn("document archive failed")
		} else {
			log.WithField("object_key", key).Debug("document archived")
		}
	}

	raw, err := s.documents.ReadDocument(ctx, data, mimeType)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.FundingItem{}, ctxErr
		}
		log.WithError(err).Error("document analysis failed")
		return models.FundingItem{}, fmt.Errorf("%w: %v", ErrDocumentFailed, err)
	}
	return ParseDraft(raw, SourceUploadedDocument, s.now())
}

// ExtractURL 分析网页地址。
func (s *Service) ExtractURL(ctx context.Context, url string) (models.FundingItem, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return models.FundingItem{}, ErrEmptyInput
	}
	raw, err := s.urls.ReadURL(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.FundingItem{}, ctxErr
		}
		s.log.WithError(err).WithField("url", url).Error("url analysis failed")
		return models.FundingItem{}, fmt.Errorf("%w: %v", ErrURLFailed, err)
	}
	return ParseDraft(raw, url, s.now())
}

// Investor 生成投资人画像。
func (s *Service) Investor(ctx context.Context, name string) (models.InvestorProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.InvestorProfile{}, ErrEmptyInput
	}
	profile, err := s.investors.LookupInvestor(ctx, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.InvestorProfile{}, ctxErr
		}
		s.log.WithError(err).WithField("investor", name).Error("investor analysis failed")
		return models.InvestorProfile{}, fmt.Errorf("%w: %v", ErrInvestorNotFound, err)
	}
	return profile, nil
}
