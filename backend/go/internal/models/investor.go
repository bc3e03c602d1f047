package models

// InvestorProfile 是投资人分析的结果，只与产生它的查询相关，不做持久化。
type InvestorProfile struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	TicketSize     string   `json:"ticketSize"`
	FocusAreas     []string `json:"focusAreas"`
	RecentExits    []string `json:"recentExits"`
	RedFlags       []string `json:"redFlags"`
	AcceptanceRate string   `json:"acceptanceRate"`
}
