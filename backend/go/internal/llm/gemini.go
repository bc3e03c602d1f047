package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"FundingIntel/backend/go/internal/config"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/circuitbreaker"
	"FundingIntel/backend/go/pkg/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoAPIKey 表示未配置 Gemini API 密钥，所有调用立即失败。
var ErrNoAPIKey = errors.New("gemini api key is not configured")

// ErrNoAudio 表示语音合成响应中没有音频数据。
var ErrNoAudio = errors.New("no audio generated")

// ChatFallbackReply 是对话调用失败时返回给用户的固定文本。
const ChatFallbackReply = "I'm having trouble connecting to the funding database right now. Please check your API key or try again later."

const systemInstruction = `You are Funding Intelligence AI, an expert in startup funding, government schemes, and venture capital in India.
Answer questions concisely.
Structure your answers with Markdown.
If asked about specific schemes, provide amounts and eligibility if known.
Support languages: English, Tamil, Hindi.`

const documentPrompt = `Analyze this document/image. Identify if it contains information about funding, grants, or subsidies.
Extract the following fields and return ONLY a JSON object:
{
  "title": "Name of the scheme/funding",
  "amount": "The financial value mentioned",
  "investor": "Who is providing the funds",
  "tags": ["Array of relevant keywords"],
  "summary": "A 1 sentence summary"
}
If no funding info is found, return null.`

// Gemini 封装了对话、文档理解与语音合成三个 Gemini 模型。
// 所有请求都经过同一个熔断器。
type Gemini struct {
	client  *genai.Client
	chat    *genai.GenerativeModel
	vision  *genai.GenerativeModel
	speech  *genai.GenerativeModel
	breaker *circuitbreaker.Breaker
	log     *logger.Logger
}

// NewGemini 创建 Gemini 客户端。
// 未配置密钥时不会报错，返回的实例在每次调用时返回 ErrNoAPIKey。
func NewGemini(ctx context.Context, cfg config.GeminiConfig, breaker *circuitbreaker.Breaker, log *logger.Logger) (*Gemini, error) {
	if log == nil {
		log = logger.Discard()
	}
	g := &Gemini{breaker: breaker, log: log}
	if cfg.APIKey == "" {
		log.Warn("Gemini API 密钥未配置，实时 AI 调用将直接失败")
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}
	g.client = client

	g.chat = client.GenerativeModel(cfg.ChatModel)
	g.chat.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))

	g.vision = client.GenerativeModel(cfg.VisionModel)
	g.vision.ResponseMIMEType = "application/json"
	g.vision.ResponseSchema = extractionSchema()

	g.speech = client.GenerativeModel(cfg.SpeechModel)
	return g, nil
}

// Close 释放底层连接。
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Chat 在给定历史的基础上发送一条消息并返回回答文本。
// 任何错误都被记录并替换为 ChatFallbackReply。
func (g *Gemini) Chat(ctx context.Context, message string, history []models.ChatMessage) string {
	text, err := g.sendChat(ctx, message, history)
	if err != nil {
		g.log.WithError(err).Error("Gemini 对话调用失败")
		return ChatFallbackReply
	}
	return text
}

func (g *Gemini) sendChat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	if g.client == nil {
		return "", ErrNoAPIKey
	}
	session := g.chat.StartChat()
	session.History = toHistory(history)

	resp, err := g.call(func() (*genai.GenerateContentResponse, error) {
		return session.SendMessage(ctx, genai.Text(message))
	})
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// AnalyzeDocument 让视觉模型从图像或文档中提取资金信息，返回原始 JSON 文本。
// 错误直接返回，由调用方决定如何提示用户。
func (g *Gemini) AnalyzeDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	if g.client == nil {
		return "", ErrNoAPIKey
	}
	resp, err := g.call(func() (*genai.GenerateContentResponse, error) {
		return g.vision.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: data}, genai.Text(documentPrompt))
	})
	if err != nil {
		return "", fmt.Errorf("gemini document analysis: %w", err)
	}
	return responseText(resp), nil
}

// ReadDocument 使 Gemini 可以作为文档分析器使用。
func (g *Gemini) ReadDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	return g.AnalyzeDocument(ctx, data, mimeType)
}

// GenerateSpeech 将文本合成为语音，返回第一段内联音频。
// 失败时返回 nil, false。
func (g *Gemini) GenerateSpeech(ctx context.Context, text, lang string) ([]byte, bool) {
	audio, err := g.generateSpeech(ctx, text)
	if err != nil {
		g.log.WithError(err).WithField("language", lang).Warn("Gemini 语音合成失败")
		return nil, false
	}
	return audio, true
}

func (g *Gemini) generateSpeech(ctx context.Context, text string) ([]byte, error) {
	if g.client == nil {
		return nil, ErrNoAPIKey
	}
	resp, err := g.call(func() (*genai.GenerateContentResponse, error) {
		return g.speech.GenerateContent(ctx, genai.Text(text))
	})
	if err != nil {
		return nil, err
	}
	audio := firstAudio(resp)
	if audio == nil {
		return nil, ErrNoAudio
	}
	return audio, nil
}

func (g *Gemini) call(req func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if g.breaker == nil {
		return req()
	}
	return circuitbreaker.Do(g.breaker, req)
}

// ChatResponder 让 Gemini 对话可以替代本地模拟助手。
// 实时回答不附带资金条目卡片。
type ChatResponder struct {
	gemini *Gemini
}

// NewChatResponder 创建基于 Gemini 的会话回答器。
func NewChatResponder(g *Gemini) *ChatResponder {
	return &ChatResponder{gemini: g}
}

// Respond 实现 chat.Responder。
func (r *ChatResponder) Respond(ctx context.Context, query string, history []models.ChatMessage) (models.AssistantReply, error) {
	if err := ctx.Err(); err != nil {
		return models.AssistantReply{}, err
	}
	return models.AssistantReply{Text: r.gemini.Chat(ctx, query, priorTurns(query, history))}, nil
}

// priorTurns 去掉历史末尾与本次提问相同的用户消息，它会作为新消息单独发送。
func priorTurns(query string, history []models.ChatMessage) []models.ChatMessage {
	n := len(history)
	if n > 0 && history[n-1].Role == models.RoleUser && history[n-1].Text == query {
		return history[:n-1]
	}
	return history
}

func extractionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"amount":   {Type: genai.TypeString},
			"investor": {Type: genai.TypeString},
			"summary":  {Type: genai.TypeString},
			"tags":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	}
}

// toHistory 将会话消息转换为 Gemini 历史，跳过占位消息与空消息。
func toHistory(history []models.ChatMessage) []*genai.Content {
	var out []*genai.Content
	for _, m := range history {
		if m.IsLoading || strings.TrimSpace(m.Text) == "" {
			continue
		}
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Text)}})
	}
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		break
	}
	return sb.String()
}

func firstAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if b, ok := p.(genai.Blob); ok && len(b.Data) > 0 {
				return b.Data
			}
		}
	}
	return nil
}
