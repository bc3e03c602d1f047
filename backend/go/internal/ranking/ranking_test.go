package ranking

import (
	"context"
	"errors"
	"testing"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"₹50,00,000", 5_000_000, true},
		{"2.5 Cr", 25_000_000, true},
		{"$3M", 3_000_000, true},
		{"2bn", 2_000_000_000, true},
		{"Rs. 10 crore", 100_000_000, true},
		{"750", 750, true},
		{"40 lakh", 40, true},
		{"Undisclosed", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAmount(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestScore(t *testing.T) {
	score, reason := Score(Evidence{Amount: "₹1 Cr", Investors: "Accel", Date: "2025-01-01", Confidence: 1})
	if score != 12 {
		t.Errorf("score = %v, want 12", score)
	}
	if reason != "Has funding amount, Mentions investors, Date included, High confidence score (1)" {
		t.Errorf("reason = %q", reason)
	}

	if score, reason := Score(Evidence{}); score != 0 || reason != "Weak funding signal" {
		t.Errorf("empty evidence = %v, %q", score, reason)
	}
}

func TestEvidenceFromItem_IgnoresPlaceholders(t *testing.T) {
	draft := models.FundingItem{Amount: "Undisclosed", Investor: "Unknown", Stage: "Analyzed", Location: "Extracted", Tags: []string{"Extracted"}}
	if e := EvidenceFromItem(draft, 0); e != (Evidence{}) {
		t.Errorf("EvidenceFromItem(draft) = %+v, want empty", e)
	}
}

type fakeClassifier map[string]error

func (f fakeClassifier) IsFunding(_ context.Context, title, _ string) (bool, error) {
	err, known := f[title]
	if !known {
		return true, nil
	}
	return false, err
}

func TestRanker(t *testing.T) {
	items := []models.FundingItem{
		{ID: "weak", Title: "weak"},
		{ID: "strong", Title: "strong", Amount: "₹1 Cr", Investor: "A", Stage: "Seed", Location: "Kerala", Deadline: "2025-01-01", Tags: []string{"EV"}},
		{ID: "other", Title: "other", Amount: "₹1 Cr"},
		{ID: "flaky", Title: "flaky", Amount: "₹1 Cr"},
	}

	ranked, total := NewRanker(nil).Rank(context.Background(), items)
	if total != 4 || ranked[0].ID != "strong" || ranked[0].InfoScore != 18 {
		t.Fatalf("unclassified rank = %d, first %+v", total, ranked[0])
	}
	if ranked[1].ID != "other" || ranked[2].ID != "flaky" {
		t.Errorf("ties should keep input order, got %s, %s", ranked[1].ID, ranked[2].ID)
	}

	classifier := fakeClassifier{"other": nil, "flaky": errors.New("ollama down")}
	ranked, total = NewRanker(nil, WithClassifier(classifier)).Rank(context.Background(), items)
	if total != 3 {
		t.Fatalf("total = %d, want 3 after dropping non-funding item", total)
	}
	for _, r := range ranked {
		if r.ID == "other" {
			t.Error("non-funding item kept")
		}
		if r.ID == "flaky" && r.InfoScore != 3 {
			t.Errorf("classifier error should keep item without confidence, score = %v", r.InfoScore)
		}
		if r.ID == "strong" && r.InfoScore != 20 {
			t.Errorf("confirmed item score = %v, want 20", r.InfoScore)
		}
	}
}

func TestRanker_KeepsTopTen(t *testing.T) {
	items := catalog.Default().All()
	ranked, total := NewRanker(nil).Rank(context.Background(), items)
	if total != len(items) || len(ranked) != DefaultLimit {
		t.Fatalf("Rank() = %d of %d, want %d of %d", len(ranked), total, DefaultLimit, len(items))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].InfoScore > ranked[i-1].InfoScore {
			t.Errorf("rank %d scores %v above rank %d (%v)", i, ranked[i].InfoScore, i-1, ranked[i-1].InfoScore)
		}
	}

	small, _ := NewRanker(nil, WithLimit(3)).Rank(context.Background(), items)
	if len(small) != 3 {
		t.Errorf("WithLimit(3) kept %d", len(small))
	}
}
