package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"FundingIntel/backend/go/internal/config"
	"FundingIntel/backend/go/pkg/circuitbreaker"

	olla "github.com/ollama/ollama/api"
)

const intentPrompt = `
Classify whether this text implies startup FUNDING news.

Return ONLY one of these JSON values:
{"intent": "funding"} or {"intent": "other"}

TEXT:
%s
`

// Ollama 使用本地 Ollama 模型判断一段文本是否为资金信息。
type Ollama struct {
	client  *olla.Client
	model   string
	breaker *circuitbreaker.Breaker
}

// NewOllama 创建 Ollama 客户端。baseURL 为空时使用本机默认端口。
func NewOllama(cfg config.OllamaConfig, breaker *circuitbreaker.Breaker) (*Ollama, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL: %w", err)
	}
	hc := &http.Client{Timeout: 120 * time.Second}
	return &Ollama{client: olla.NewClient(parsed, hc), model: cfg.Model, breaker: breaker}, nil
}

// IsFunding 实现 ranking.IntentClassifier。模型回答中出现 "funding" 即视为资金信息。
func (o *Ollama) IsFunding(ctx context.Context, title, snippet string) (bool, error) {
	prompt := fmt.Sprintf(intentPrompt, title+". "+snippet)
	answer, err := o.generate(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(answer), "funding"), nil
}

func (o *Ollama) generate(ctx context.Context, prompt string) (string, error) {
	req := func() (string, error) {
		var out strings.Builder
		stream := false
		err := o.client.Generate(ctx, &olla.GenerateRequest{
			Model:  o.model,
			Prompt: prompt,
			Stream: &stream,
		}, func(resp olla.GenerateResponse) error {
			out.WriteString(resp.Response)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("ollama generate: %w", err)
		}
		return strings.TrimSpace(out.String()), nil
	}
	if o.breaker == nil {
		return req()
	}
	return circuitbreaker.Do(o.breaker, req)
}
