package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderGroq {
		t.Errorf("expected default provider %q, got %q", ProviderGroq, cfg.Provider)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.MemoryTurns != 10 {
		t.Errorf("expected default memory_turns 10, got %d", cfg.MemoryTurns)
	}
	if cfg.Timeouts.SatelliteSeconds != 15 {
		t.Errorf("expected default satellite timeout 15, got %d", cfg.Timeouts.SatelliteSeconds)
	}
	if cfg.SatelliteTimeout() != 15*time.Second {
		t.Errorf("expected satellite timeout duration 15s, got %v", cfg.SatelliteTimeout())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.rootsource.yml")

	original := DefaultConfig()
	original.Provider = ProviderOllama
	original.Model = "llama3"
	original.Port = 9090
	original.MemoryTurns = 6
	original.AllowOrigins = []string{"https://rootsource.example"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.MemoryTurns != original.MemoryTurns {
		t.Errorf("memory_turns: got %d, want %d", loaded.MemoryTurns, original.MemoryTurns)
	}
	if len(loaded.AllowOrigins) != 1 || loaded.AllowOrigins[0] != original.AllowOrigins[0] {
		t.Errorf("allow_origins: got %v, want %v", loaded.AllowOrigins, original.AllowOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderGroq {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("ROOTSOURCE_PROVIDER", "ollama")
	defer os.Unsetenv("ROOTSOURCE_PROVIDER")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderOllama {
		t.Errorf("env override failed: got %q, want %q", loaded.Provider, ProviderOllama)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "invalid"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty model")
	}
}

func TestValidateBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative port")
	}
}

func TestValidateZeroMemoryTurns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemoryTurns = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero memory_turns")
	}
}

func TestValidateSQLiteNeedsPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemoryBackend = MemorySQLite
	cfg.MemoryPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for sqlite backend without path")
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderGroq, "GROQ_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderOllama, ""},
		{ProviderDemo, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
