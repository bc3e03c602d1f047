package appstate

import (
	"context"
	"errors"
	"sync"

	"FundingIntel/backend/go/internal/chat"
	"FundingIntel/backend/go/internal/favorites"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/internal/storage"
	"FundingIntel/backend/go/pkg/logger"
)

// TutorialSeenKey 记录用户是否已看过新手引导。
const TutorialSeenKey = "funding_tutorial_seen_v1"

// ErrUnsupportedLanguage 表示语言代码不在支持列表中。
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language 是界面支持的一种语言。
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var languages = []Language{
	{Code: "en", Label: "English"},
	{Code: "ta", Label: "Tamil (தமிழ்)"},
	{Code: "hi", Label: "Hindi (हिंदी)"},
	{Code: "te", Label: "Telugu (తెలుగు)"},
}

// Languages 返回支持的语言列表。
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// Settings 是设置页所需的状态快照。
type Settings struct {
	Language     string     `json:"language"`
	Online       bool       `json:"isOnline"`
	TutorialOpen bool       `json:"isTutorialOpen"`
	SavedCount   int        `json:"savedCount"`
	Languages    []Language `json:"languages"`
}

// State 持有整个应用的共享状态：收藏夹、会话、语言、网络状态与引导标记。
// 所有修改都通过具名方法完成。
type State struct {
	favorites *favorites.Store
	chat      *chat.Manager
	kv        storage.KV
	log       *logger.Logger

	mu           sync.RWMutex
	language     string
	online       bool
	tutorialOpen bool
}

// New 创建应用状态。语言默认为英语，网络默认在线。
func New(kv storage.KV, fav *favorites.Store, chatManager *chat.Manager, log *logger.Logger) *State {
	if log == nil {
		log = logger.Discard()
	}
	return &State{
		favorites: fav,
		chat:      chatManager,
		kv:        kv,
		log:       log,
		language:  "en",
		online:    true,
	}
}

// Init 加载收藏夹并检查引导标记；未看过引导（或读取失败）时自动打开引导。
func (s *State) Init(ctx context.Context) {
	s.favorites.Load(ctx)

	seen, ok, err := s.kv.Get(ctx, TutorialSeenKey)
	if err != nil {
		s.log.WithError(err).Warn("读取引导标记失败，视为未看过")
	}
	open := err != nil || !ok || seen == ""

	s.mu.Lock()
	s.tutorialOpen = open
	s.mu.Unlock()
}

// Favorites 返回收藏夹。
func (s *State) Favorites() *favorites.Store { return s.favorites }

// Chat 返回会话管理器。
func (s *State) Chat() *chat.Manager { return s.chat }

// ToggleSave 收藏或取消收藏条目，返回操作后的状态。
func (s *State) ToggleSave(ctx context.Context, item models.FundingItem) bool {
	return s.favorites.Toggle(ctx, item)
}

// IsSaved 判断条目是否已收藏。
func (s *State) IsSaved(id string) bool {
	return s.favorites.IsSaved(id)
}

// SetLanguage 切换界面语言。
func (s *State) SetLanguage(code string) error {
	for _, l := range languages {
		if l.Code == code {
			s.mu.Lock()
			s.language = code
			s.mu.Unlock()
			return nil
		}
	}
	return ErrUnsupportedLanguage
}

// SetOnline 更新网络连接状态。
func (s *State) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// OpenTutorial 打开新手引导。
func (s *State) OpenTutorial() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutorialOpen = true
}

// DismissTutorial 关闭新手引导并记录已看过。写入失败只记录日志。
func (s *State) DismissTutorial(ctx context.Context) {
	s.mu.Lock()
	s.tutorialOpen = false
	s.mu.Unlock()

	if err := s.kv.Set(ctx, TutorialSeenKey, "true"); err != nil {
		s.log.WithError(err).Warn("写入引导标记失败")
	}
}

// Snapshot 返回当前设置的快照。
func (s *State) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Settings{
		Language:     s.language,
		Online:       s.online,
		TutorialOpen: s.tutorialOpen,
		SavedCount:   len(s.favorites.Items()),
		Languages:    Languages(),
	}
}
