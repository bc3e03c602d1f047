package catalog

import (
	"errors"
	"testing"

	"FundingIntel/backend/go/internal/models"
)

func TestDefault_LoadsBuiltinEntries(t *testing.T) {
	c := Default()
	if c.Len() != 23 {
		t.Fatalf("Len() = %d, want 23", c.Len())
	}
	all := c.All()
	if all[0].ID != "1" || all[len(all)-1].ID != "20" {
		t.Errorf("unexpected order: first=%s last=%s", all[0].ID, all[len(all)-1].ID)
	}
	for _, it := range all {
		if !it.Type.Valid() {
			t.Errorf("item %s has invalid category %q", it.ID, it.Type)
		}
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.FundingItem{{ID: "a"}, {ID: "a"}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	_, err = New([]models.FundingItem{{Title: "no id"}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID for empty id", err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := Default()
	it, ok := c.Get("1")
	if !ok {
		t.Fatal("entry 1 not found")
	}
	it.Tags[0] = "mutated"
	again, _ := c.Get("1")
	if again.Tags[0] != "Subsidy" {
		t.Errorf("catalog mutated through copy: %v", again.Tags)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestSearch(t *testing.T) {
	c := Default()
	tests := []struct {
		name   string
		query  string
		filter Filter
		check  func(t *testing.T, got []models.FundingItem)
	}{
		{
			name:  "empty query returns everything",
			query: "",
			check: func(t *testing.T, got []models.FundingItem) {
				if len(got) != c.Len() {
					t.Errorf("len = %d, want %d", len(got), c.Len())
				}
			},
		},
		{
			name:  "tag match is case-insensitive",
			query: "biotech",
			check: func(t *testing.T, got []models.FundingItem) {
				if len(got) != 1 || got[0].ID != "8" {
					t.Errorf("got %v, want only entry 8", ids(got))
				}
			},
		},
		{
			name:   "region filter",
			filter: Filter{Region: "Tamil Nadu"},
			check: func(t *testing.T, got []models.FundingItem) {
				if len(got) != 1 || got[0].ID != "1" {
					t.Errorf("got %v, want only entry 1", ids(got))
				}
			},
		},
		{
			name:   "type and amount filters combine",
			filter: Filter{InvestorType: "Angel", MinAmount: 20000000, Region: AllRegions},
			check: func(t *testing.T, got []models.FundingItem) {
				if len(got) != 1 || got[0].ID != "11" {
					t.Errorf("got %v, want only entry 11", ids(got))
				}
			},
		},
		{
			name:  "no match",
			query: "zzz-nothing",
			check: func(t *testing.T, got []models.FundingItem) {
				if got == nil || len(got) != 0 {
					t.Errorf("got %v, want empty non-nil slice", got)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, c.Search(tt.query, tt.filter))
		})
	}
}

func TestOptionLists(t *testing.T) {
	if r := Regions(); r[0] != AllRegions || len(r) != 10 {
		t.Errorf("Regions() = %v", r)
	}
	want := []string{"All Types", "Govt", "VC", "Angel", "Subsidy"}
	got := InvestorTypes()
	if len(got) != len(want) {
		t.Fatalf("InvestorTypes() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InvestorTypes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCountByCategory(t *testing.T) {
	counts := Default().CountByCategory()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 23 {
		t.Errorf("total = %d, want 23", total)
	}
	if counts[models.CategoryAngel] != 3 {
		t.Errorf("angel count = %d, want 3", counts[models.CategoryAngel])
	}
}

func ids(items []models.FundingItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
