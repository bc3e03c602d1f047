package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/latency"
)

func userMsg(text string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleUser, Text: text}
}

func TestMatch_GreetingIgnoresHistory(t *testing.T) {
	cat := catalog.Default()
	histories := [][]models.ChatMessage{
		nil,
		{userMsg("ev startups"), {Role: models.RoleAssistant, Text: "..."}},
	}
	for _, q := range []string{"hi", "  Hello ", "HI"} {
		for _, h := range histories {
			got := Match(cat, q, h)
			if got.Text != GreetingReply || len(got.Items) != 0 {
				t.Errorf("Match(%q) = %+v, want greeting", q, got)
			}
		}
	}
}

func TestMatch_RefinementAfterEV(t *testing.T) {
	cat := catalog.Default()
	history := []models.ChatMessage{
		userMsg("EV startups"),
		{Role: models.RoleAssistant, Text: "found some"},
		userMsg("in tn"),
	}
	got := Match(cat, "in tn", history)
	if got.Text != RefinementReply {
		t.Fatalf("Text = %q, want refinement reply", got.Text)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "1" {
		t.Errorf("Items = %v, want exactly entry 1", got.Items)
	}
}

func TestMatch_RefinementWithoutEVContextFallsThrough(t *testing.T) {
	cat := catalog.Default()
	got := Match(cat, "in tamil nadu", []models.ChatMessage{userMsg("biotech grants")})
	if got.Text == RefinementReply {
		t.Fatal("refinement should not apply without an EV context")
	}
	if got.Text != FallbackReply || len(got.Items) != 0 {
		t.Errorf("got %+v, want fallback", got)
	}
}

func TestMatch_Fallback(t *testing.T) {
	got := Match(catalog.Default(), "zzz-nonexistent-topic", nil)
	if got.Text != FallbackReply {
		t.Errorf("Text = %q, want fallback", got.Text)
	}
	if len(got.Items) != 0 {
		t.Errorf("Items = %v, want none", got.Items)
	}
}

func TestMatch_Topics(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		query      string
		wantIDs    []string
		textPrefix string
		textSuffix string
	}{
		{query: "electric", wantIDs: []string{"1", "ev-2", "ev-3", "ev-4"}, textPrefix: "I found **4 EV-related"},
		{query: "women founders", wantIDs: []string{"6"}, textSuffix: bestFitSuffix},
		{query: "farm loans", wantIDs: []string{"17"}, textSuffix: bestFitSuffix},
		{query: "angel", wantIDs: []string{"5", "11", "16"}, textSuffix: bestFitSuffix},
		{query: "kerala", wantIDs: []string{"13"}, textSuffix: bestFitSuffix},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Match(cat, tt.query, nil)
			if len(got.Items) != len(tt.wantIDs) {
				t.Fatalf("got %d items %v, want %v", len(got.Items), got.Items, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if got.Items[i].ID != id {
					t.Errorf("item[%d] = %s, want %s", i, got.Items[i].ID, id)
				}
			}
			if tt.textPrefix != "" && !strings.HasPrefix(got.Text, tt.textPrefix) {
				t.Errorf("Text = %q, want prefix %q", got.Text, tt.textPrefix)
			}
			if tt.textSuffix != "" && !strings.HasSuffix(got.Text, tt.textSuffix) {
				t.Errorf("Text = %q, want suffix %q", got.Text, tt.textSuffix)
			}
		})
	}
}

func TestMatch_EligibilityPhrasing(t *testing.T) {
	// "subsidy" 命中标签，附加 "eligibility" 改变回复措辞
	got := Match(catalog.Default(), "subsidy", nil)
	if !strings.HasSuffix(got.Text, bestFitSuffix) {
		t.Fatalf("unexpected text %q", got.Text)
	}
	items := catalog.Default().Filter(func(it models.FundingItem) bool { return it.ID == "6" })
	cat, err := catalog.New(items)
	if err != nil {
		t.Fatal(err)
	}
	got = Match(cat, "women eligibility", nil)
	if !strings.HasSuffix(got.Text, eligibilitySuffix) || len(got.Items) != 1 {
		t.Errorf("got %+v, want eligibility phrasing with one item", got)
	}
}

func TestResponder_CancelledContext(t *testing.T) {
	r := NewResponder(catalog.Default(), latency.Fixed(time.Hour), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Respond(ctx, "hi", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestResponder_Instant(t *testing.T) {
	r := NewResponder(catalog.Default(), latency.Instant(), nil)
	got, err := r.Respond(context.Background(), "hello", nil)
	if err != nil || got.Text != GreetingReply {
		t.Fatalf("Respond() = %+v, %v", got, err)
	}
}
