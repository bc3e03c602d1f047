package appstate

import (
	"context"
	"errors"
	"testing"

	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/chat"
	"FundingIntel/backend/go/internal/favorites"
	"FundingIntel/backend/go/internal/storage"
)

type failingGetKV struct{ *storage.MemoryKV }

func (failingGetKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("unreadable")
}

func newState(kv storage.KV) *State {
	return New(kv, favorites.NewStore(kv, nil), chat.NewManager(nil, nil), nil)
}

func TestInit_TutorialFlag(t *testing.T) {
	ctx := context.Background()

	fresh := newState(storage.NewMemory())
	fresh.Init(ctx)
	if !fresh.Snapshot().TutorialOpen {
		t.Error("tutorial should open for a new user")
	}

	seenKV := storage.NewMemory()
	_ = seenKV.Set(ctx, TutorialSeenKey, "true")
	seen := newState(seenKV)
	seen.Init(ctx)
	if seen.Snapshot().TutorialOpen {
		t.Error("tutorial should stay closed once seen")
	}

	broken := newState(failingGetKV{storage.NewMemory()})
	broken.Init(ctx)
	if !broken.Snapshot().TutorialOpen {
		t.Error("unreadable flag should default to not seen")
	}
}

func TestDismissTutorial_Persists(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := newState(kv)
	s.Init(ctx)
	s.DismissTutorial(ctx)

	if s.Snapshot().TutorialOpen {
		t.Error("tutorial still open after dismiss")
	}
	if v, ok, _ := kv.Get(ctx, TutorialSeenKey); !ok || v != "true" {
		t.Errorf("flag = %q %v, want true", v, ok)
	}

	s.OpenTutorial()
	if !s.Snapshot().TutorialOpen {
		t.Error("OpenTutorial did not reopen")
	}
}

func TestSetLanguage(t *testing.T) {
	s := newState(storage.NewMemory())
	if err := s.SetLanguage("ta"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLanguage("fr"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("err = %v, want ErrUnsupportedLanguage", err)
	}
	if got := s.Snapshot().Language; got != "ta" {
		t.Errorf("language = %q, want ta", got)
	}
}

func TestToggleSaveAndConnectivity(t *testing.T) {
	ctx := context.Background()
	s := newState(storage.NewMemory())
	s.Init(ctx)
	item, _ := catalog.Default().Get("ev-2")

	if !s.ToggleSave(ctx, item) || !s.IsSaved("ev-2") {
		t.Fatal("ToggleSave did not save")
	}
	if s.Snapshot().SavedCount != 1 {
		t.Errorf("SavedCount = %d", s.Snapshot().SavedCount)
	}

	if !s.Snapshot().Online {
		t.Error("state should start online")
	}
	s.SetOnline(false)
	if s.Snapshot().Online {
		t.Error("SetOnline(false) ignored")
	}
}
