package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"FundingIntel/backend/go/internal/models"
)

var (
	// ErrBusy 表示已有一次分析正在进行。
	ErrBusy = errors.New("an analysis is already in progress")
	// ErrStale 表示分析完成前工作区已被重置，结果被丢弃。
	ErrStale = errors.New("analysis result discarded after reset")
)

// Mode 是分析页的三种模式。
type Mode string

const (
	ModeDocument Mode = "document"
	ModeURL      Mode = "url"
	ModeInvestor Mode = "investor"
)

// Result 是最近一次分析的结果。Draft 与 Investor 至多一个非空。
type Result struct {
	Mode       Mode                    `json:"mode,omitempty"`
	Draft      *models.FundingItem     `json:"draft,omitempty"`
	Investor   *models.InvestorProfile `json:"investor,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Analyzing  bool                    `json:"analyzing"`
	FinishedAt *time.Time              `json:"finishedAt,omitempty"`
}

// Workspace 保存分析页的状态：同一时间只允许一次分析，
// 重置会递增代数，使进行中的分析在完成时被丢弃。
type Workspace struct {
	svc *Service
	now func() time.Time

	mu         sync.Mutex
	generation uint64
	busy       bool
	latest     Result
}

// NewWorkspace 创建工作区。
func NewWorkspace(svc *Service) *Workspace {
	return &Workspace{svc: svc, now: time.Now}
}

// AnalyzeDocument 在工作区中分析文档。
func (w *Workspace) AnalyzeDocument(ctx context.Context, name string, data []byte, mimeType string) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyInput
	}
	return w.run(ctx, ModeDocument, func(ctx context.Context) (Result, error) {
		item, err := w.svc.ExtractDocument(ctx, name, data, mimeType)
		return Result{Draft: &item}, err
	})
}

// AnalyzeURL 在工作区中分析网页。
func (w *Workspace) AnalyzeURL(ctx context.Context, url string) (Result, error) {
	if isBlank(url) {
		return Result{}, ErrEmptyInput
	}
	return w.run(ctx, ModeURL, func(ctx context.Context) (Result, error) {
		item, err := w.svc.ExtractURL(ctx, url)
		return Result{Draft: &item}, err
	})
}

// AnalyzeInvestor 在工作区中分析投资人。
func (w *Workspace) AnalyzeInvestor(ctx context.Context, name string) (Result, error) {
	if isBlank(name) {
		return Result{}, ErrEmptyInput
	}
	return w.run(ctx, ModeInvestor, func(ctx context.Context) (Result, error) {
		profile, err := w.svc.Investor(ctx, name)
		return Result{Investor: &profile}, err
	})
}

// Reset 清空结果并使进行中的分析失效。
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generation++
	w.busy = false
	w.latest = Result{}
}

// Latest 返回最近一次分析的结果副本。
func (w *Workspace) Latest() Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest.clone()
}

// Busy 报告是否有分析正在进行。
func (w *Workspace) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

func (w *Workspace) run(ctx context.Context, mode Mode, fn func(context.Context) (Result, error)) (Result, error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return Result{}, ErrBusy
	}
	w.busy = true
	gen := w.generation
	w.latest = Result{Mode: mode, Analyzing: true}
	w.mu.Unlock()

	// 分析不随请求取消；过期结果由代数判断丢弃。
	res, err := fn(context.WithoutCancel(ctx))

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		return Result{}, ErrStale
	}
	w.busy = false
	finished := w.now()
	res.Mode = mode
	res.FinishedAt = &finished
	if err != nil {
		res = Result{Mode: mode, Error: UserMessage(mode, err), FinishedAt: &finished}
	}
	w.latest = res
	return res.clone(), err
}

func (r Result) clone() Result {
	c := r
	if r.Draft != nil {
		d := r.Draft.Clone()
		c.Draft = &d
	}
	if r.Investor != nil {
		p := *r.Investor
		p.FocusAreas = append([]string(nil), r.Investor.FocusAreas...)
		p.RecentExits = append([]string(nil), r.Investor.RecentExits...)
		p.RedFlags = append([]string(nil), r.Investor.RedFlags...)
		c.Investor = &p
	}
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		c.FinishedAt = &t
	}
	return c
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UserMessage 把分析错误转换为展示给用户的提示。
func UserMessage(mode Mode, err error) string {
	switch {
	case errors.Is(err, ErrUnparseable):
		return "Could not parse extracted data."
	case errors.Is(err, ErrNoFundingData) && mode == ModeURL:
		return "Could not extract funding data from this URL."
	case errors.Is(err, ErrNoFundingData):
		return "Could not extract meaningful funding data."
	case errors.Is(err, ErrDocumentFailed):
		return "Failed to analyze document."
	case errors.Is(err, ErrURLFailed):
		return "Failed to scan website."
	case errors.Is(err, ErrInvestorNotFound):
		return "Could not find investor data."
	default:
		return err.Error()
	}
}
