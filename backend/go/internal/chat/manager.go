package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/logger"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage 表示消息为空白，发送被忽略。
	ErrEmptyMessage = errors.New("message is empty")
	// ErrPending 表示上一条消息的回复尚未返回，发送被忽略。
	ErrPending = errors.New("a reply is still pending")
	// ErrSessionNotFound 表示会话不存在。
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionGone 表示等待回复期间会话已被删除，回复被丢弃。
	ErrSessionGone = errors.New("session deleted before reply arrived")
)

const titleLimit = 30

// Responder 根据问题与历史消息生成助手回复。
type Responder interface {
	Respond(ctx context.Context, query string, history []models.ChatMessage) (models.AssistantReply, error)
}

// Manager 管理全部会话、当前会话指针以及唯一的“等待回复”标记。
// 所有方法并发安全；调用 Responder 时不持有锁。
type Manager struct {
	responder Responder
	log       *logger.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	sessions []*models.ChatSession // 最新的在前
	activeID string
	pending  bool
}

// Option 配置 Manager。
type Option func(*Manager)

// WithClock 替换时钟。
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator 替换会话与消息 ID 生成器。
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// NewManager 创建会话管理器。
func NewManager(responder Responder, log *logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.Discard()
	}
	m := &Manager{
		responder: responder,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load 追加已有会话（例如示例会话），保持传入顺序。
func (m *Manager) Load(sessions ...*models.ChatSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range sessions {
		m.sessions = append(m.sessions, s.Clone())
	}
}

// CreateSession 开始一段新对话：只清空当前会话指针，真正的会话在第一条消息时创建。
func (m *Manager) CreateSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeID = ""
}

// Select 切换当前会话。
func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(id) == nil {
		return ErrSessionNotFound
	}
	m.activeID = id
	return nil
}

// SendMessage 发送一条用户消息并等待助手回复。
// 空白消息或已有回复在等待时直接返回错误，状态不变。
// 调用方的 ctx 被取消不会中断回答，会话总是得到用户消息与回复两条。
// 没有当前会话时以消息前 30 个字符为标题新建会话。
func (m *Manager) SendMessage(ctx context.Context, text string) (*models.ChatSession, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return nil, ErrPending
	}
	m.pending = true

	userMsg := models.ChatMessage{ID: m.newID(), Role: models.RoleUser, Text: text}
	session := m.find(m.activeID)
	if session == nil {
		session = &models.ChatSession{
			ID:        m.newID(),
			Title:     sessionTitle(text),
			CreatedAt: m.now(),
		}
		m.sessions = append([]*models.ChatSession{session}, m.sessions...)
		m.activeID = session.ID
	}
	session.Messages = append(session.Messages, userMsg)
	sessionID := session.ID
	history := session.Clone().Messages
	m.mu.Unlock()

	log := m.log.WithSession(sessionID)
	// 回答一旦开始就运行到结束并写回会话，请求断开也不打断。
	reply, err := m.responder.Respond(context.WithoutCancel(ctx), text, history)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = false

	if err != nil {
		log.WithError(err).Warn("responder failed, keeping user message only")
		return nil, err
	}
	session = m.find(sessionID)
	if session == nil {
		log.Info("session deleted while waiting for reply, discarding")
		return nil, ErrSessionGone
	}
	session.Messages = append(session.Messages, models.ChatMessage{
		ID:   m.newID(),
		Role: models.RoleAssistant,
		Text: reply.Text,
		Data: models.CloneItems(reply.Items),
	})
	log.WithField("matches", len(reply.Items)).Debug("assistant reply appended")
	return session.Clone(), nil
}

// DeleteSession 删除会话；删除当前会话时清空当前指针。
func (m *Manager) DeleteSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sessions {
		if s.ID == id {
			m.sessions = append(m.sessions[:i:i], m.sessions[i+1:]...)
			if m.activeID == id {
				m.activeID = ""
			}
			return nil
		}
	}
	return ErrSessionNotFound
}

// ToggleStar 切换会话的星标，返回新的星标状态。
func (m *Manager) ToggleStar(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(id)
	if s == nil {
		return false, ErrSessionNotFound
	}
	s.IsStarred = !s.IsStarred
	return s.IsStarred, nil
}

// Sessions 返回全部会话的副本，最新的在前。
func (m *Manager) Sessions() []*models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.ChatSession, len(m.sessions))
	for i, s := range m.sessions {
		out[i] = s.Clone()
	}
	return out
}

// Partition 将会话分为星标与最近两组，组内保持原有顺序。
func (m *Manager) Partition() (starred, recent []*models.ChatSession) {
	starred, recent = []*models.ChatSession{}, []*models.ChatSession{}
	for _, s := range m.Sessions() {
		if s.IsStarred {
			starred = append(starred, s)
		} else {
			recent = append(recent, s)
		}
	}
	return starred, recent
}

// Active 返回当前会话；没有当前会话时返回 nil。
func (m *Manager) Active() *models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.find(m.activeID); s != nil {
		return s.Clone()
	}
	return nil
}

// ActiveID 返回当前会话 ID，可能为空。
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Get 按 ID 返回会话副本。
func (m *Manager) Get(id string) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(id)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Pending 报告是否正在等待回复。
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// find 必须在持有锁时调用。
func (m *Manager) find(id string) *models.ChatSession {
	if id == "" {
		return nil
	}
	for _, s := range m.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func sessionTitle(text string) string {
	if utf8.RuneCountInString(text) <= titleLimit {
		return text
	}
	return string([]rune(text)[:titleLimit]) + "..."
}
