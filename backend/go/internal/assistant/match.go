package assistant

import (
	"fmt"
	"strings"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/models"
)

const (
	GreetingReply = "Hello! I'm your Funding Intelligence AI. \n\n" +
		"I can help you find startup funding. Ask me about **EV startups**, **AgriTech grants**, or **Seed funding in Bangalore**."
	RefinementReply = "Narrowing down to **Tamil Nadu**: I found the specific EV subsidy scheme you are looking for."
	FallbackReply   = "I searched our global database but couldn't find exact matches for that specific query. \n\n" +
		"**Suggestions:**\n- Try broader terms like **'Tech Grants'**.\n- Search by location, e.g., **'Funding in Karnataka'**."

	evReplyFormat      = "I found **%d EV-related funding opportunities** across India, including Central Govt schemes and state-specific policies. \n\nYou can refine this by asking for a specific state, like **\"in TN\"** or **\"in Karnataka\"**."
	genericReplyFormat = "I found **%d funding opportunities** matching your request."
	eligibilitySuffix  = "\n\nBased on your query, I've checked the eligibility criteria. These schemes are currently **active**."
	bestFitSuffix      = "\n\nI've analyzed the database and these seem to be the best fit."
)

// Match 根据查询文本和历史消息生成回复。
// 纯函数：相同的目录、查询与历史总是得到相同结果。规则按优先级依次匹配，命中即返回。
func Match(cat *catalog.Catalog, query string, history []models.ChatMessage) models.AssistantReply {
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "hi" || q == "hello" {
		return models.AssistantReply{Text: GreetingReply, Items: []models.FundingItem{}}
	}

	if isRefinement(q) && len(history) > 0 {
		if items := refineToTamilNadu(cat, q, history); len(items) > 0 {
			return models.AssistantReply{Text: RefinementReply, Items: items}
		}
	}

	results := cat.Filter(func(it models.FundingItem) bool {
		return keywordMatch(it, q)
	})
	if len(results) == 0 {
		return models.AssistantReply{Text: FallbackReply, Items: []models.FundingItem{}}
	}

	var text string
	switch {
	case mentionsEV(q):
		text = fmt.Sprintf(evReplyFormat, len(results))
	case strings.Contains(q, "eligibility"):
		text = fmt.Sprintf(genericReplyFormat, len(results)) + eligibilitySuffix
	default:
		text = fmt.Sprintf(genericReplyFormat, len(results)) + bestFitSuffix
	}
	return models.AssistantReply{Text: text, Items: results}
}

func isRefinement(q string) bool {
	return q == "in tn" || q == "in tamil nadu"
}

// refineToTamilNadu 查找上一条与当前不同的用户消息，若其谈及电动车则缩小到泰米尔纳德邦的电动车条目。
func refineToTamilNadu(cat *catalog.Catalog, q string, history []models.ChatMessage) []models.FundingItem {
	prev, ok := models.LastUserMessage(history, func(m models.ChatMessage) bool {
		return strings.ToLower(m.Text) != q
	})
	if !ok || !mentionsEV(strings.ToLower(prev.Text)) {
		return nil
	}
	return cat.Filter(func(it models.FundingItem) bool {
		return strings.Contains(strings.ToLower(it.Location), "tamil nadu") && isEVItem(it)
	})
}

func keywordMatch(it models.FundingItem, q string) bool {
	if strings.Contains(strings.ToLower(it.Title), q) ||
		it.HasTagContaining(q) ||
		strings.Contains(strings.ToLower(it.Location), q) ||
		strings.ToLower(string(it.Type)) == q {
		return true
	}
	return topicMatch(it, q)
}

// topicMatch 按主题做宽松匹配，只采用第一个命中的主题。
func topicMatch(it models.FundingItem, q string) bool {
	switch {
	case mentionsEV(q):
		return isEVItem(it)
	case strings.Contains(q, "woman") || strings.Contains(q, "women") || strings.Contains(q, "female"):
		return it.HasTagContaining("woman") || it.HasTagContaining("women")
	case strings.Contains(q, "agri") || strings.Contains(q, "farm"):
		return it.HasTagContaining("agri")
	}
	return false
}

func mentionsEV(lower string) bool {
	return strings.Contains(lower, "ev") || strings.Contains(lower, "electric")
}

func isEVItem(it models.FundingItem) bool {
	return it.HasTag("EV") || strings.Contains(it.Title, "Electric")
}
