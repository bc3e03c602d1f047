package assistant

import (
	"context"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/latency"
	"FundingIntel/backend/go/pkg/logger"
)

// Responder 是本地模拟的对话助手，在规则匹配前模拟一段思考时间。
type Responder struct {
	catalog *catalog.Catalog
	delay   *latency.Simulator
	log     *logger.Logger
}

// NewResponder 创建模拟助手。delay 为 nil 时立即返回。
func NewResponder(cat *catalog.Catalog, delay *latency.Simulator, log *logger.Logger) *Responder {
	if log == nil {
		log = logger.Discard()
	}
	return &Responder{catalog: cat, delay: delay, log: log}
}

// Respond 等待模拟延迟后返回匹配结果。ctx 被取消时返回 ctx 的错误。
func (r *Responder) Respond(ctx context.Context, query string, history []models.ChatMessage) (models.AssistantReply, error) {
	if err := r.delay.Wait(ctx); err != nil {
		return models.AssistantReply{}, err
	}
	reply := Match(r.catalog, query, history)
	r.log.WithPayload(map[string]interface{}{
		"query":   query,
		"matches": len(reply.Items),
	}).Debug("mock responder answered")
	return reply, nil
}
