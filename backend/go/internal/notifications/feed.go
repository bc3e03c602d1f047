package notifications

import "sync"

// Kind 是通知类型。
type Kind string

const (
	KindDeadline Kind = "deadline"
	KindFunding  Kind = "funding"
	KindSystem   Kind = "system"
	KindUpdate   Kind = "update"
)

// Priority 是通知优先级。
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Notification 是通知中心的一条消息。
type Notification struct {
	ID       int      `json:"id"`
	Kind     Kind     `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Time     string   `json:"time"` // 相对时间描述，例如 "2 hours ago"
	Read     bool     `json:"read"`
	Priority Priority `json:"priority"`
}

func builtin() []Notification {
	return []Notification{
		{
			ID: 1, Kind: KindDeadline, Priority: PriorityHigh,
			Title:   "Deadline Approaching: TN EV Subsidy",
			Message: "The application window for the Tamil Nadu Electric Vehicle Subsidy closes in 3 days. Ensure your documents are ready.",
			Time:    "2 hours ago",
		},
		{
			ID: 2, Kind: KindFunding, Priority: PriorityMedium,
			Title:   "New Grant Match Found",
			Message: "We found a new \"AgriTech Innovation Grant\" that matches your profile. Funding amount: ₹50L.",
			Time:    "1 day ago",
		},
		{
			ID: 3, Kind: KindSystem, Priority: PriorityLow, Read: true,
			Title:   "System Upgrade: Felix Felicis v2.0",
			Message: "Our AI engine has been upgraded. You can now search using voice commands in Hindi and Tamil.",
			Time:    "3 days ago",
		},
		{
			ID: 4, Kind: KindUpdate, Priority: PriorityMedium, Read: true,
			Title:   "Policy Change Alert",
			Message: "The GST exemption rules for startups have been updated by the Ministry of Finance.",
			Time:    "1 week ago",
		},
	}
}

// Feed 是内置的通知列表，只支持标记为已读。
type Feed struct {
	mu    sync.RWMutex
	items []Notification
}

// NewFeed 创建包含内置通知的列表。
func NewFeed() *Feed {
	return &Feed{items: builtin()}
}

// List 返回全部通知。
func (f *Feed) List() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Notification(nil), f.items...)
}

// Unread 返回未读数量。
func (f *Feed) Unread() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, it := range f.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// MarkAllRead 将全部通知标记为已读。
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}
