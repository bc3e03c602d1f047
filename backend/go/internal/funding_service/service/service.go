package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"FundingIntel/backend/go/internal/analyzer"
	"FundingIntel/backend/go/internal/appstate"
	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/favorites"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/internal/notifications"
	"FundingIntel/backend/go/internal/ranking"
	"FundingIntel/backend/go/pkg/logger"
)

var (
	// ErrItemNotFound 表示目录与收藏夹中都没有该条目。
	ErrItemNotFound = errors.New("funding item not found")
	// ErrSpeechUnavailable 表示语音合成不可用或失败。
	ErrSpeechUnavailable = errors.New("speech synthesis unavailable")
)

// featuredCount 是首页展示的条目数量。
const featuredCount = 3

// Speaker 是文本转语音的能力，由实时 AI 客户端提供。
type Speaker interface {
	GenerateSpeech(ctx context.Context, text, lang string) ([]byte, bool)
}

// CheckFunc 检查一个外部依赖是否可用。
type CheckFunc func(ctx context.Context) error

type readinessCheck struct {
	name  string
	check CheckFunc
}

// Service 封装了 API 层使用的所有业务逻辑。
type Service struct {
	catalog   *catalog.Catalog
	state     *appstate.State
	workspace *analyzer.Workspace
	feed      *notifications.Feed
	speaker   Speaker
	ranker    *ranking.Ranker
	checks    []readinessCheck
	log       *logger.Logger
	now       func() time.Time
}

// Option 配置 Service。
type Option func(*Service)

// WithClock 替换时间源，供测试使用。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSpeaker 启用语音合成。
func WithSpeaker(sp Speaker) Option {
	return func(s *Service) { s.speaker = sp }
}

// WithRanker 替换搜索排序器，例如启用资金意图分类的排序器。
func WithRanker(r *ranking.Ranker) Option {
	return func(s *Service) { s.ranker = r }
}

// WithReadinessCheck 注册一个就绪检查，例如存储或对象存储的连通性。
func WithReadinessCheck(name string, check CheckFunc) Option {
	return func(s *Service) { s.checks = append(s.checks, readinessCheck{name: name, check: check}) }
}

// NewService 创建一个新的 Service 实例。
func NewService(cat *catalog.Catalog, state *appstate.State, ws *analyzer.Workspace, feed *notifications.Feed, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		catalog:   cat,
		state:     state,
		workspace: ws,
		feed:      feed,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ranker == nil {
		s.ranker = ranking.NewRanker(log)
	}
	return s
}

// --- Home & Search ---

// HomeView 是首页所需的汇总数据。
type HomeView struct {
	Total               int                     `json:"total"`
	Counts              map[models.Category]int `json:"counts"`
	Featured            []models.FundingItem    `json:"featured"`
	SavedCount          int                     `json:"savedCount"`
	UnreadNotifications int                     `json:"unreadNotifications"`
}

// Home 返回目录统计与推荐条目。
func (s *Service) Home() HomeView {
	all := s.catalog.All()
	featured := all
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}
	return HomeView{
		Total:               s.catalog.Len(),
		Counts:              s.catalog.CountByCategory(),
		Featured:            featured,
		SavedCount:          len(s.state.Favorites().Items()),
		UnreadNotifications: s.feed.Unread(),
	}
}

// SearchResult 是搜索页的结果。
type SearchResult struct {
	Query   string               `json:"query"`
	Filter  catalog.Filter       `json:"filter"`
	Count   int                  `json:"count"`
	Items   []models.FundingItem `json:"items"`
	Regions []string             `json:"regions"`
	Types   []string             `json:"types"`
}

// Search 按关键字与筛选条件检索目录。
func (s *Service) Search(query string, f catalog.Filter) SearchResult {
	if f.Region == "" {
		f.Region = catalog.AllRegions
	}
	if f.InvestorType == "" {
		f.InvestorType = catalog.AllTypes
	}
	items := s.catalog.Search(query, f)
	return SearchResult{
		Query:   query,
		Filter:  f,
		Count:   len(items),
		Items:   items,
		Regions: catalog.Regions(),
		Types:   catalog.InvestorTypes(),
	}
}

// RankedSearchResult 是按资金证据排序的搜索结果。
type RankedSearchResult struct {
	Query       string           `json:"query"`
	TotalHits   int              `json:"totalHits"`
	Results     []ranking.Ranked `json:"results"`
	Explanation string           `json:"explanation"`
}

// RankedSearch 先按条件检索目录，再按资金证据打分，保留得分最高的条目。
func (s *Service) RankedSearch(ctx context.Context, query string, f catalog.Filter) RankedSearchResult {
	results, total := s.ranker.Rank(ctx, s.Search(query, f).Items)
	return RankedSearchResult{
		Query:       query,
		TotalHits:   total,
		Results:     results,
		Explanation: ranking.Explanation,
	}
}

// Item 按 ID 查找目录条目。
func (s *Service) Item(id string) (models.FundingItem, error) {
	item, ok := s.catalog.Get(id)
	if !ok {
		return models.FundingItem{}, ErrItemNotFound
	}
	return item, nil
}

// --- Chat ---

// SessionList 是会话侧边栏的视图。
type SessionList struct {
	ActiveID string                `json:"activeSessionId"`
	Pending  bool                  `json:"pending"`
	Starred  []*models.ChatSession `json:"starred"`
	Recent   []*models.ChatSession `json:"recent"`
}

// Sessions 返回按收藏划分的会话列表。
func (s *Service) Sessions() SessionList {
	m := s.state.Chat()
	starred, recent := m.Partition()
	return SessionList{
		ActiveID: m.ActiveID(),
		Pending:  m.Pending(),
		Starred:  starred,
		Recent:   recent,
	}
}

// NewChat 开始一段新的会话（不立即创建会话，首条消息时创建）。
func (s *Service) NewChat() SessionList {
	s.state.Chat().CreateSession()
	return s.Sessions()
}

// Session 返回单个会话。
func (s *Service) Session(id string) (*models.ChatSession, error) {
	return s.state.Chat().Get(id)
}

// SelectSession 切换当前会话。
func (s *Service) SelectSession(id string) (*models.ChatSession, error) {
	m := s.state.Chat()
	if err := m.Select(id); err != nil {
		return nil, err
	}
	return m.Get(id)
}

// DeleteSession 删除会话。
func (s *Service) DeleteSession(id string) error {
	return s.state.Chat().DeleteSession(id)
}

// ToggleStar 切换会话的收藏状态。
func (s *Service) ToggleStar(id string) (bool, error) {
	return s.state.Chat().ToggleStar(id)
}

// SendMessage 向当前会话发送消息并等待助手回答。
func (s *Service) SendMessage(ctx context.Context, text string) (*models.ChatSession, error) {
	return s.state.Chat().SendMessage(ctx, text)
}

// --- Saved ---

// SavedView 是收藏页的视图。
type SavedView struct {
	Sort              favorites.SortMode   `json:"sort"`
	Count             int                  `json:"count"`
	TotalLakhs        float64              `json:"totalLakhs"`
	UpcomingDeadlines int                  `json:"upcomingDeadlines"`
	Items             []models.FundingItem `json:"items"`
	Groups            favorites.Groups     `json:"groups"`
}

// Saved 返回排序后的收藏夹及其统计。
func (s *Service) Saved(sort string) SavedView {
	mode := favorites.ParseSortMode(sort)
	fav := s.state.Favorites()
	items := fav.Sorted(mode)
	return SavedView{
		Sort:              mode,
		Count:             len(items),
		TotalLakhs:        fav.TotalLakhs(),
		UpcomingDeadlines: fav.UpcomingDeadlines(s.now()),
		Items:             items,
		Groups:            fav.Grouped(mode),
	}
}

// ToggleSaved 收藏或取消收藏。item 非空时直接使用（例如分析得到的草稿），
// 否则依次在目录与现有收藏中按 ID 查找。
func (s *Service) ToggleSaved(ctx context.Context, id string, item *models.FundingItem) (bool, error) {
	if item != nil && item.ID != "" {
		return s.state.ToggleSave(ctx, *item), nil
	}
	id = strings.TrimSpace(id)
	if found, ok := s.catalog.Get(id); ok {
		return s.state.ToggleSave(ctx, found), nil
	}
	for _, saved := range s.state.Favorites().Items() {
		if saved.ID == id {
			return s.state.ToggleSave(ctx, saved), nil
		}
	}
	return false, ErrItemNotFound
}

// --- Analyze ---

// AnalyzeDocument 分析上传的文档。
func (s *Service) AnalyzeDocument(ctx context.Context, name string, data []byte, mimeType string) (analyzer.Result, error) {
	return s.workspace.AnalyzeDocument(ctx, name, data, mimeType)
}

// AnalyzeURL 分析网页。
func (s *Service) AnalyzeURL(ctx context.Context, url string) (analyzer.Result, error) {
	return s.workspace.AnalyzeURL(ctx, url)
}

// AnalyzeInvestor 生成投资人画像。
func (s *Service) AnalyzeInvestor(ctx context.Context, name string) (analyzer.Result, error) {
	return s.workspace.AnalyzeInvestor(ctx, name)
}

// LatestAnalysis 返回最近一次分析结果。
func (s *Service) LatestAnalysis() analyzer.Result {
	return s.workspace.Latest()
}

// ResetAnalysis 清空分析工作区。
func (s *Service) ResetAnalysis() {
	s.workspace.Reset()
}

// --- Settings ---

// SettingsUpdate 是设置页的局部更新，未设置的字段保持不变。
type SettingsUpdate struct {
	Language     *string `json:"language"`
	Online       *bool   `json:"isOnline"`
	TutorialOpen *bool   `json:"isTutorialOpen"`
}

// Settings 返回当前设置。
func (s *Service) Settings() appstate.Settings {
	return s.state.Snapshot()
}

// UpdateSettings 应用局部更新。关闭引导会持久化已读标记。
func (s *Service) UpdateSettings(ctx context.Context, u SettingsUpdate) (appstate.Settings, error) {
	if u.Language != nil {
		if err := s.state.SetLanguage(*u.Language); err != nil {
			return appstate.Settings{}, err
		}
	}
	if u.Online != nil {
		s.state.SetOnline(*u.Online)
	}
	if u.TutorialOpen != nil {
		if *u.TutorialOpen {
			s.state.OpenTutorial()
		} else {
			s.state.DismissTutorial(ctx)
		}
	}
	return s.state.Snapshot(), nil
}

// DismissTutorial 关闭引导并记住已读。
func (s *Service) DismissTutorial(ctx context.Context) appstate.Settings {
	s.state.DismissTutorial(ctx)
	return s.state.Snapshot()
}

// --- Notifications ---

// NotificationList 是通知页的视图。
type NotificationList struct {
	Unread int                          `json:"unread"`
	Items  []notifications.Notification `json:"items"`
}

// Notifications 返回通知列表。
func (s *Service) Notifications() NotificationList {
	return NotificationList{Unread: s.feed.Unread(), Items: s.feed.List()}
}

// MarkNotificationsRead 将所有通知标记为已读。
func (s *Service) MarkNotificationsRead() NotificationList {
	s.feed.MarkAllRead()
	return s.Notifications()
}

// --- Speech ---

// Speak 将文本合成为语音。
func (s *Service) Speak(ctx context.Context, text, lang string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, analyzer.ErrEmptyInput
	}
	if s.speaker == nil {
		return nil, ErrSpeechUnavailable
	}
	if lang == "" {
		lang = s.state.Snapshot().Language
	}
	audio, ok := s.speaker.GenerateSpeech(ctx, text, lang)
	if !ok {
		return nil, ErrSpeechUnavailable
	}
	return audio, nil
}

// --- Readiness ---

// Ready 依次执行所有就绪检查，返回每项的状态以及是否全部通过。
func (s *Service) Ready(ctx context.Context) (map[string]string, bool) {
	results := make(map[string]string, len(s.checks))
	ready := true
	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			s.log.WithError(err).WithField("check", c.name).Warn("就绪检查失败")
			results[c.name] = err.Error()
			ready = false
			continue
		}
		results[c.name] = "ok"
	}
	return results, ready
}
