package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"FundingIntel/backend/go/internal/analyzer"
	"FundingIntel/backend/go/internal/appstate"
	"FundingIntel/backend/go/internal/assistant"
	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/chat"
	"FundingIntel/backend/go/internal/favorites"
	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/internal/notifications"
	"FundingIntel/backend/go/internal/storage"
	"FundingIntel/backend/go/pkg/latency"
)

type fakeSpeaker struct {
	lang string
	ok   bool
}

func (f *fakeSpeaker) GenerateSpeech(_ context.Context, _ string, lang string) ([]byte, bool) {
	f.lang = lang
	if !f.ok {
		return nil, false
	}
	return []byte{0x52, 0x49}, true
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	cat := catalog.Default()
	kv := storage.NewMemory()
	manager := chat.NewManager(assistant.NewResponder(cat, latency.Instant(), nil), nil)
	state := appstate.New(kv, favorites.NewStore(kv, nil), manager, nil)
	state.Init(context.Background())
	mock := analyzer.NewMock(analyzer.MockLatency{}, rand.New(rand.NewSource(3)))
	ws := analyzer.NewWorkspace(analyzer.NewService(mock, mock, mock, nil))
	return NewService(cat, state, ws, notifications.NewFeed(), nil, opts...)
}

func TestReady(t *testing.T) {
	svc := newTestService(t,
		WithReadinessCheck("storage", func(context.Context) error { return nil }),
		WithReadinessCheck("archive", func(context.Context) error { return errors.New("bucket unreachable") }),
	)
	checks, ok := svc.Ready(context.Background())
	if ok {
		t.Error("Ready() should fail when a check fails")
	}
	if checks["storage"] != "ok" || checks["archive"] != "bucket unreachable" {
		t.Errorf("checks = %v", checks)
	}

	if _, ok := newTestService(t).Ready(context.Background()); !ok {
		t.Error("no checks should mean ready")
	}
}

func TestSpeak(t *testing.T) {
	if _, err := newTestService(t).Speak(context.Background(), "hello", "en"); !errors.Is(err, ErrSpeechUnavailable) {
		t.Errorf("err = %v, want ErrSpeechUnavailable without speaker", err)
	}

	sp := &fakeSpeaker{ok: true}
	svc := newTestService(t, WithSpeaker(sp))
	lang := "hi"
	if _, err := svc.UpdateSettings(context.Background(), SettingsUpdate{Language: &lang}); err != nil {
		t.Fatal(err)
	}
	audio, err := svc.Speak(context.Background(), "namaste", "")
	if err != nil || len(audio) != 2 {
		t.Fatalf("Speak() = %v, %v", audio, err)
	}
	if sp.lang != "hi" {
		t.Errorf("speaker language = %q, want the selected language", sp.lang)
	}

	sp.ok = false
	if _, err := svc.Speak(context.Background(), "x", "en"); !errors.Is(err, ErrSpeechUnavailable) {
		t.Errorf("err = %v, want ErrSpeechUnavailable", err)
	}
	if _, err := svc.Speak(context.Background(), "  ", "en"); !errors.Is(err, analyzer.ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestSavedView(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	for _, id := range []string{"1", "ev-2"} {
		if saved, err := svc.ToggleSaved(ctx, id, nil); err != nil || !saved {
			t.Fatalf("ToggleSaved(%s) = %v, %v", id, saved, err)
		}
	}
	view := svc.Saved("bogus")
	if view.Sort != favorites.SortRecent || view.Count != 2 {
		t.Errorf("view = sort %q count %d", view.Sort, view.Count)
	}
	if len(view.Groups.Govt)+len(view.Groups.Private) != 2 {
		t.Errorf("groups = %+v", view.Groups)
	}
	if view.Items[0].ID != "1" {
		t.Errorf("recent order should keep save order, got %s first", view.Items[0].ID)
	}

	if _, err := svc.ToggleSaved(ctx, "", &models.FundingItem{}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestUpdateSettings_Tutorial(t *testing.T) {
	svc := newTestService(t)
	open, closed := true, false

	got, err := svc.UpdateSettings(context.Background(), SettingsUpdate{TutorialOpen: &open})
	if err != nil || !got.TutorialOpen {
		t.Fatalf("open tutorial = %+v, %v", got, err)
	}
	got, _ = svc.UpdateSettings(context.Background(), SettingsUpdate{TutorialOpen: &closed})
	if got.TutorialOpen {
		t.Error("tutorial should be closed")
	}
	if got.Language != "en" || !got.Online {
		t.Errorf("untouched fields changed: %+v", got)
	}
}
