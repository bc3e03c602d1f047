package analyzer

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/latency"
)

// extraction 是抽取结果的 JSON 结构，与在线模型的响应格式一致。
type extraction struct {
	Title    string   `json:"title,omitempty"`
	Amount   string   `json:"amount,omitempty"`
	Investor string   `json:"investor,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

var documentRecords = []extraction{
	{
		Title:    "Detected: National Bio-Entrepreneurship Grant",
		Amount:   "₹50,00,000",
		Investor: "BIRAC & DBT",
		Tags:     []string{"BioTech", "Life Sciences", "Grant", "Govt"},
		Summary:  "A competitive grant scheme identifying and nurturing biotech entrepreneurs for novel ideas with commercial potential. Eligibility requires proof of concept.",
	},
	{
		Title:    "Extracted: MSME Technology Upgradation Scheme",
		Amount:   "₹15,00,000",
		Investor: "Ministry of MSME",
		Tags:     []string{"MSME", "Technology", "Subsidy", "Manufacturing"},
		Summary:  "Credit linked capital subsidy for technology upgradation (CLCSS). Provides 15% subsidy for additional investment in plant and machinery.",
	},
	{
		Title:    "Scanned: Women in Tech Accelerator",
		Amount:   "₹25,00,000",
		Investor: "Global Tech Foundation",
		Tags:     []string{"Women", "Accelerator", "Equity Free", "Global"},
		Summary:  "An equity-free grant program designed to support women-led technology startups scaling into international markets.",
	},
}

var urlRecords = []extraction{
	{
		Title:    "Web Extracted: PM FME Scheme",
		Amount:   "₹10,00,000",
		Investor: "MoFPI",
		Tags:     []string{"Food Processing", "Micro Enterprise", "Subsidy"},
		Summary:  "PM Formalisation of Micro food processing Enterprises (PMFME) Scheme. Credit linked subsidy @ 35% of eligible project cost with a ceiling of ₹10 Lakhs.",
	},
	{
		Title:    "Web Extracted: Atal New India Challenge",
		Amount:   "₹1,00,00,000",
		Investor: "AIM, NITI Aayog",
		Tags:     []string{"Grant", "DeepTech", "Innovation"},
		Summary:  "Grant-in-aid of up to ₹1 Crore for startups solving challenges in sectors like Rail, Space, and Agriculture.",
	},
	{
		Title:    "Web Extracted: Solar Power Subsidy 2024",
		Amount:   "₹20,00,000",
		Investor: "MNRE",
		Tags:     []string{"Solar", "Green Energy", "Subsidy", "Govt"},
		Summary:  "Central Financial Assistance (CFA) for residential rooftop solar consumers. 30% subsidy for systems up to 3kW.",
	},
}

// MockLatency 定义三种模拟分析的延迟。
type MockLatency struct {
	Document *latency.Simulator
	URL      *latency.Simulator
	Investor *latency.Simulator
}

// DefaultMockLatency 返回默认延迟：文档 2s，网页 2.5s，投资人 1.2s。
func DefaultMockLatency() MockLatency {
	return MockLatency{
		Document: latency.Fixed(2000 * time.Millisecond),
		URL:      latency.Fixed(2500 * time.Millisecond),
		Investor: latency.Fixed(1200 * time.Millisecond),
	}
}

// Mock 是本地模拟的分析器，实现 DocumentReader、URLReader 和 InvestorReader。
// 文档与网页分析从固定候选中均匀随机地选取一条记录。
type Mock struct {
	delay MockLatency

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock 创建模拟分析器。rng 为 nil 时使用当前时间作为种子。
func NewMock(delay MockLatency, rng *rand.Rand) *Mock {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Mock{delay: delay, rng: rng}
}

// ReadDocument 忽略文档内容，返回一条随机的文档抽取结果。
func (m *Mock) ReadDocument(ctx context.Context, _ []byte, _ string) (string, error) {
	if err := m.delay.Document.Wait(ctx); err != nil {
		return "", err
	}
	return m.pick(documentRecords)
}

// ReadURL 忽略地址内容，返回一条随机的网页抽取结果。
func (m *Mock) ReadURL(ctx context.Context, _ string) (string, error) {
	if err := m.delay.URL.Wait(ctx); err != nil {
		return "", err
	}
	return m.pick(urlRecords)
}

// LookupInvestor 返回一份固定的风投画像，名称沿用输入。
func (m *Mock) LookupInvestor(ctx context.Context, name string) (models.InvestorProfile, error) {
	if err := m.delay.Investor.Wait(ctx); err != nil {
		return models.InvestorProfile{}, err
	}
	return models.InvestorProfile{
		Name:           name,
		Type:           "Venture Capital",
		TicketSize:     "$500k - $5M",
		FocusAreas:     []string{"SaaS", "FinTech", "DeepTech", "AI"},
		RecentExits:    []string{"Freshworks", "Unacademy", "Razorpay"},
		RedFlags:       []string{"Requires Board Seat", "Long Due Diligence (4+ months)"},
		AcceptanceRate: "1.2%",
	}, nil
}

func (m *Mock) pick(records []extraction) (string, error) {
	m.mu.Lock()
	i := m.rng.Intn(len(records))
	m.mu.Unlock()
	b, err := json.Marshal(records[i])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
