package config

import (
	"os"
	"path/filepath"
	"testing"
)

// pointing HOME at a temp dir isolates ~/.lectern per test
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LECTERN_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.LLM.GenerationModel != "gpt-4o" {
		t.Errorf("GenerationModel = %q, want gpt-4o", cfg.LLM.GenerationModel)
	}
	if cfg.LLM.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.LLM.ChatModel)
	}
	if cfg.LLM.TranscriptionModel != "whisper-1" {
		t.Errorf("TranscriptionModel = %q, want whisper-1", cfg.LLM.TranscriptionModel)
	}
	if cfg.LLM.InputCostPer1M != 2.50 || cfg.LLM.OutputCostPer1M != 10.00 {
		t.Errorf("rates = %v/%v, want 2.50/10.00", cfg.LLM.InputCostPer1M, cfg.LLM.OutputCostPer1M)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".lectern")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	yml := []byte("log_level: debug\nstorage:\n  backend: sqlite\nllm:\n  generation_model: gpt-4o-2024\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yml, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.LLM.GenerationModel != "gpt-4o-2024" {
		t.Errorf("GenerationModel = %q", cfg.LLM.GenerationModel)
	}
	// Unset fields keep their defaults.
	if cfg.LLM.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want default", cfg.LLM.ChatModel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("LECTERN_STORAGE_BACKEND", "sqlite")
	t.Setenv("LECTERN_CHAT_MODEL", "gpt-5-mini")
	t.Setenv("LECTERN_INPUT_COST_PER_1M", "1.25")
	t.Setenv("LECTERN_API_KEY", "sk-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q", cfg.Storage.Backend)
	}
	if cfg.LLM.ChatModel != "gpt-5-mini" {
		t.Errorf("ChatModel = %q", cfg.LLM.ChatModel)
	}
	if cfg.LLM.InputCostPer1M != 1.25 {
		t.Errorf("InputCostPer1M = %v", cfg.LLM.InputCostPer1M)
	}
	if cfg.APIKey != "sk-env" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	isolateHome(t)
	t.Setenv("LECTERN_STORAGE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil for unknown backend")
	}
}

func TestAPIKeyLifecycle(t *testing.T) {
	isolateHome(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LECTERN_API_KEY", "")

	// Nothing stored yet.
	key, err := APIKey()
	if err != nil {
		t.Fatalf("APIKey() error = %v", err)
	}
	if key != "" {
		t.Errorf("APIKey() = %q, want empty", key)
	}

	if err := SaveAPIKey("sk-test-123"); err != nil {
		t.Fatalf("SaveAPIKey() error = %v", err)
	}

	key, err = APIKey()
	if err != nil {
		t.Fatalf("APIKey() error = %v", err)
	}
	if key != "sk-test-123" {
		t.Errorf("APIKey() = %q, want sk-test-123", key)
	}

	// Secrets are owner-only.
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(dir, "secrets.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("secrets.yaml perm = %o, want 600", perm)
	}

	// The stored key surfaces through Load.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "sk-test-123" {
		t.Errorf("Load().APIKey = %q", cfg.APIKey)
	}

	if err := ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey() error = %v", err)
	}
	key, err = APIKey()
	if err != nil {
		t.Fatalf("APIKey() error = %v", err)
	}
	if key != "" {
		t.Errorf("APIKey() = %q after clear, want empty", key)
	}

	// Clearing twice is fine.
	if err := ClearAPIKey(); err != nil {
		t.Errorf("second ClearAPIKey() error = %v", err)
	}
}

func TestEnsureDir(t *testing.T) {
	home := isolateHome(t)

	dir, err := EnsureDir()
	if err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if dir != filepath.Join(home, ".lectern") {
		t.Errorf("EnsureDir() = %q", dir)
	}
	for _, sub := range []string{"logs", "data"} {
		if _, err := os.Stat(filepath.Join(dir, sub)); err != nil {
			t.Errorf("subdir %s: %v", sub, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolateHome(t)

	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.LLM.GenerationModel = "gpt-4o-custom"
	cfg.APIKey = "sk-should-not-persist"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Storage.Backend != "sqlite" || loaded.LLM.GenerationModel != "gpt-4o-custom" {
		t.Errorf("round-trip = %+v", loaded)
	}
	// The API key never lands in config.yaml.
	if loaded.APIKey == "sk-should-not-persist" {
		t.Error("API key leaked into config.yaml")
	}
}
