package chat

import (
	"time"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/models"
)

// DemoSessions 构造四段示例对话，创建时间相对 now 计算。
// 附带的条目从目录中按 ID 查找，目录中不存在时省略。
func DemoSessions(cat *catalog.Catalog, now time.Time) []*models.ChatSession {
	attach := func(id string) []models.FundingItem {
		if it, ok := cat.Get(id); ok {
			return []models.FundingItem{it}
		}
		return nil
	}
	return []*models.ChatSession{
		{
			ID: "session-1", Title: "EV Subsidy Eligibility in TN",
			CreatedAt: now.Add(-2 * time.Hour), IsStarred: true,
			Messages: []models.ChatMessage{
				{ID: "1", Role: models.RoleUser, Text: "What is the EV subsidy in Tamil Nadu?"},
				{ID: "2", Role: models.RoleAssistant, Text: "The **Tamil Nadu EV Policy** offers subsidies up to **₹1.5 Lakhs** for commercial EVs and tax exemptions for private EV buyers. You also get 100% road tax exemption till 2025. I've found a relevant scheme below.", Data: attach("1")},
			},
		},
		{
			ID: "session-2", Title: "SaaS Valuation Metrics",
			CreatedAt: now.Add(-2 * 24 * time.Hour),
			Messages: []models.ChatMessage{
				{ID: "1", Role: models.RoleUser, Text: "How do VCs value SaaS startups?"},
				{ID: "2", Role: models.RoleAssistant, Text: "VCs typically look at **ARR (Annual Recurring Revenue)** multiples, varying from 5x to 20x based on growth rate (Year-over-Year), Net Revenue Retention (NRR), and Churn rate. \n\nKey Metrics:\n- **CAC**: Customer Acquisition Cost\n- **LTV**: Lifetime Value\n- **Rule of 40**: Growth % + Profit % > 40"},
			},
		},
		{
			ID: "session-3", Title: "Biotech Grants in India",
			CreatedAt: now.Add(-5 * 24 * time.Hour), IsStarred: true,
			Messages: []models.ChatMessage{
				{ID: "1", Role: models.RoleUser, Text: "Are there any grants for Biotech startups?"},
				{ID: "2", Role: models.RoleAssistant, Text: "Yes, BIRAC (Biotechnology Industry Research Assistance Council) is the primary agency. The **BIG Grant** is the most popular one for early-stage ideas.", Data: attach("8")},
			},
		},
		{
			ID: "session-4", Title: "Startup India Registration",
			CreatedAt: now.Add(-10 * 24 * time.Hour),
			Messages: []models.ChatMessage{
				{ID: "1", Role: models.RoleUser, Text: "How to register for Startup India?"},
				{ID: "2", Role: models.RoleAssistant, Text: "To register:\n1. Incorporate your business (LLP or Pvt Ltd).\n2. Register on the Startup India portal.\n3. Upload documents (PAN, Incorporation Certificate).\n4. Apply for DPIIT recognition to avail tax benefits and the Seed Fund Scheme.", Data: attach("2")},
			},
		},
	}
}

// SeedDemoSessions 把示例对话加载到管理器中。
func (m *Manager) SeedDemoSessions(cat *catalog.Catalog, now time.Time) {
	m.Load(DemoSessions(cat, now)...)
}
