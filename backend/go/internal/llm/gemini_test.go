package llm

import (
	"context"
	"errors"
	"testing"

	"FundingIntel/backend/go/internal/config"
	"FundingIntel/backend/go/internal/models"

	"github.com/google/generative-ai-go/genai"
)

func newKeyless(t *testing.T) *Gemini {
	t.Helper()
	g, err := NewGemini(context.Background(), config.GeminiConfig{}, nil, nil)
	if err != nil {
		t.Fatalf("NewGemini() error = %v", err)
	}
	return g
}

func TestGemini_WithoutKeyFallsBack(t *testing.T) {
	g := newKeyless(t)
	defer g.Close()

	if got := g.Chat(context.Background(), "hello", nil); got != ChatFallbackReply {
		t.Errorf("Chat() = %q, want fallback", got)
	}
	if _, err := g.AnalyzeDocument(context.Background(), []byte("x"), "image/png"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("AnalyzeDocument() error = %v, want ErrNoAPIKey", err)
	}
	if audio, ok := g.GenerateSpeech(context.Background(), "hello", "ta"); ok || audio != nil {
		t.Errorf("GenerateSpeech() = %v, %v, want nil, false", audio, ok)
	}
}

func TestChatResponder(t *testing.T) {
	r := NewChatResponder(newKeyless(t))

	reply, err := r.Respond(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply.Text != ChatFallbackReply || len(reply.Items) != 0 {
		t.Errorf("reply = %+v", reply)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Respond(ctx, "hi", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Respond() with cancelled ctx error = %v", err)
	}
}

func TestToHistory(t *testing.T) {
	history := []models.ChatMessage{
		{ID: "1", Role: models.RoleUser, Text: "EV schemes"},
		{ID: "2", Role: models.RoleAssistant, Text: "Here are some"},
		{ID: "3", Role: models.RoleAssistant, IsLoading: true},
		{ID: "4", Role: models.RoleUser, Text: "   "},
	}
	got := toHistory(history)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "model" {
		t.Errorf("roles = %q, %q", got[0].Role, got[1].Role)
	}
	if text, ok := got[1].Parts[0].(genai.Text); !ok || string(text) != "Here are some" {
		t.Errorf("part = %#v", got[1].Parts[0])
	}
}

func TestPriorTurns_DropsCurrentQuery(t *testing.T) {
	history := []models.ChatMessage{
		{ID: "1", Role: models.RoleUser, Text: "EV schemes"},
		{ID: "2", Role: models.RoleAssistant, Text: "Here are some"},
		{ID: "3", Role: models.RoleUser, Text: "in TN"},
	}
	got := toHistory(priorTurns("in TN", history))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if last := got[len(got)-1]; last.Role != "model" {
		t.Errorf("last history role = %q, current query must not be repeated", last.Role)
	}

	// 末尾不是本次提问时保持不变
	if got := priorTurns("other", history); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if got := priorTurns("x", nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestResponseHelpers(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"title":`),
				genai.Text(`"X"}`),
				genai.Blob{MIMEType: "audio/pcm", Data: []byte{1, 2}},
			}},
		}},
	}
	if got := responseText(resp); got != `{"title":"X"}` {
		t.Errorf("responseText() = %q", got)
	}
	if got := firstAudio(resp); len(got) != 2 {
		t.Errorf("firstAudio() = %v", got)
	}
	if responseText(nil) != "" || firstAudio(nil) != nil {
		t.Error("nil response should yield empty results")
	}
}
