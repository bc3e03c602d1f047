package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FundingIntel/backend/go/internal/config"
)

func newOllamaServer(t *testing.T, answer func(prompt string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":    req.Model,
			"response": answer(req.Prompt),
			"done":     true,
		})
	}))
}

func TestOllama_IsFunding(t *testing.T) {
	ts := newOllamaServer(t, func(prompt string) string {
		if strings.Contains(prompt, "raises Series A") {
			return `{"intent": "funding"}`
		}
		return `{"intent": "other"}`
	})
	defer ts.Close()

	o, err := NewOllama(config.OllamaConfig{BaseURL: ts.URL, Model: "llama3.1"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if ok, err := o.IsFunding(ctx, "Startup raises Series A", "led by Accel"); err != nil || !ok {
		t.Errorf("funding text = %v, %v", ok, err)
	}
	if ok, err := o.IsFunding(ctx, "Cricket score", "India won"); err != nil || ok {
		t.Errorf("other text = %v, %v", ok, err)
	}
}

func TestOllama_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	o, _ := NewOllama(config.OllamaConfig{BaseURL: ts.URL, Model: "missing"}, nil)
	if _, err := o.IsFunding(context.Background(), "t", "s"); err == nil {
		t.Error("expected error from failing server")
	}
}
