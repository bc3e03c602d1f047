package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("app:\n  name: funding\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.App.Name != "funding" {
		t.Errorf("App.Name = %q, want funding", cfg.App.Name)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Mock.Responder.Min() != time.Second || cfg.Mock.Responder.Max() != 2*time.Second {
		t.Errorf("responder latency = [%v, %v], want [1s, 2s]", cfg.Mock.Responder.Min(), cfg.Mock.Responder.Max())
	}
	if cfg.Mock.URL.Min() != 2500*time.Millisecond {
		t.Errorf("url latency = %v, want 2.5s", cfg.Mock.URL.Min())
	}
	if cfg.LLM.Ollama.Model != "llama3.1" || cfg.LLM.Ollama.Enabled {
		t.Errorf("Ollama = %+v, want disabled llama3.1", cfg.LLM.Ollama)
	}
	if cfg.Storage.Driver != "file" && os.Getenv("FUNDING_STORAGE_DRIVER") == "" {
		t.Errorf("Storage.Driver = %q, want file", cfg.Storage.Driver)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
llm:
  provider: gemini
mock:
  instant: true
  seed: 7
  responder:
    minMillis: 10
    maxMillis: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.LLM.Provider != "gemini" || !cfg.Mock.Instant || cfg.Mock.Seed != 7 {
		t.Errorf("unexpected llm/mock config: %+v %+v", cfg.LLM, cfg.Mock)
	}
	if cfg.Mock.Responder.MaxMillis != 10 {
		t.Errorf("max latency should be raised to min, got %d", cfg.Mock.Responder.MaxMillis)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &AppConfig{}
	cfg.ApplyDefaults()
	env := map[string]string{
		"API_KEY":                "legacy",
		"GEMINI_API_KEY":         "primary",
		"FUNDING_STORAGE_DRIVER": "memory",
	}
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.LLM.Gemini.APIKey != "primary" {
		t.Errorf("APIKey = %q, want primary", cfg.LLM.Gemini.APIKey)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}
}

func TestShutdownTimeout_Fallback(t *testing.T) {
	cfg := &AppConfig{Server: ServerConfig{ShutdownTimeout: "soon"}}
	if got := cfg.ShutdownTimeout(); got != 10*time.Second {
		t.Errorf("ShutdownTimeout() = %v, want 10s", got)
	}
}
