package models

import "time"

// Role 定义了消息发送者的角色。
type Role string

const (
	RoleUser      Role = "user"      // 用户角色。
	RoleAssistant Role = "assistant" // 助手角色。
)

// ChatMessage 是会话中的单条消息，创建后不可变。
type ChatMessage struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Text      string        `json:"text"`
	Data      []FundingItem `json:"data,omitempty"`      // 附带的资金条目卡片
	IsLoading bool          `json:"isLoading,omitempty"` // 占位消息标记
}

// Clone 深拷贝消息及其附带条目。
func (m ChatMessage) Clone() ChatMessage {
	c := m
	c.Data = CloneItems(m.Data)
	return c
}

// ChatSession 是与助手的一段对话。消息只追加，不重排。
type ChatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"createdAt"`
	IsStarred bool          `json:"isStarred"`
	Messages  []ChatMessage `json:"messages"`
}

// Clone 深拷贝整个会话。
func (s *ChatSession) Clone() *ChatSession {
	c := *s
	c.Messages = make([]ChatMessage, len(s.Messages))
	for i, m := range s.Messages {
		c.Messages[i] = m.Clone()
	}
	return &c
}

// LastUserMessage 返回最近一条满足条件的用户消息。
func LastUserMessage(history []ChatMessage, accept func(ChatMessage) bool) (ChatMessage, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if m.Role == RoleUser && (accept == nil || accept(m)) {
			return m, true
		}
	}
	return ChatMessage{}, false
}

// AssistantReply 是助手对一次提问的回答：文本与附带的资金条目。
type AssistantReply struct {
	Text  string        `json:"text"`
	Items []FundingItem `json:"data"`
}
