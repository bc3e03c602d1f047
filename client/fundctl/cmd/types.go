package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// fundingItem is the subset of a catalog entry the CLI prints.
type fundingItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Amount      string   `json:"amount"`
	Investor    string   `json:"investor"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Deadline    string   `json:"deadline,omitempty"`
	EvidenceURL string   `json:"evidence_url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
}

type chatMessage struct {
	ID   string        `json:"id"`
	Role string        `json:"role"`
	Text string        `json:"text"`
	Data []fundingItem `json:"data,omitempty"`
}

type chatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	IsStarred bool          `json:"isStarred"`
	Messages  []chatMessage `json:"messages"`
}

type sessionList struct {
	ActiveID string         `json:"activeSessionId"`
	Pending  bool           `json:"pending"`
	Starred  []*chatSession `json:"starred"`
	Recent   []*chatSession `json:"recent"`
}

type investorProfile struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	TicketSize     string   `json:"ticketSize"`
	FocusAreas     []string `json:"focusAreas"`
	RecentExits    []string `json:"recentExits"`
	RedFlags       []string `json:"redFlags"`
	AcceptanceRate string   `json:"acceptanceRate"`
}

type analysisResult struct {
	Mode     string           `json:"mode"`
	Draft    *fundingItem     `json:"draft,omitempty"`
	Investor *investorProfile `json:"investor,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func printItems(w io.Writer, items []fundingItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAMOUNT\tTYPE\tLOCATION\tDEADLINE")
	for _, it := range items {
		deadline := it.Deadline
		if deadline == "" {
			deadline = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Title, it.Amount, it.Type, it.Location, deadline)
	}
	tw.Flush()
}

func printItem(w io.Writer, it fundingItem) {
	fmt.Fprintf(w, "%s  [%s]\n", it.Title, it.ID)
	fmt.Fprintf(w, "  Amount:   %s\n", it.Amount)
	fmt.Fprintf(w, "  Investor: %s\n", it.Investor)
	fmt.Fprintf(w, "  Type:     %s\n", it.Type)
	if len(it.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(it.Tags, ", "))
	}
	if it.Description != "" {
		fmt.Fprintf(w, "  %s\n", it.Description)
	}
	if it.EvidenceURL != "" && it.EvidenceURL != "#" {
		fmt.Fprintf(w, "  Source:   %s\n", it.EvidenceURL)
	}
}
