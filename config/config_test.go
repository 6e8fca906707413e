package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.APIPrefix != "/api/ai" {
		t.Errorf("expected default api prefix /api/ai, got %s", cfg.Server.APIPrefix)
	}
	if cfg.History.Limit != 20 {
		t.Errorf("expected default history limit 20, got %d", cfg.History.Limit)
	}
	if cfg.History.PromptWindow != 5 {
		t.Errorf("expected default prompt window 5, got %d", cfg.History.PromptWindow)
	}
	if cfg.Intent.MinWords != 50 {
		t.Errorf("expected default min words 50, got %d", cfg.Intent.MinWords)
	}
	if cfg.Intent.MinKeywords != 3 {
		t.Errorf("expected default min keywords 3, got %d", cfg.Intent.MinKeywords)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("expected empty NATS URL by default, got %s", cfg.NATS.URL)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing server addr",
			modify:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
		},
		{
			name:    "zero history limit",
			modify:  func(c *Config) { c.History.Limit = 0 },
			wantErr: true,
		},
		{
			name:    "negative prompt window",
			modify:  func(c *Config) { c.History.PromptWindow = -1 },
			wantErr: true,
		},
		{
			name:    "zero min keywords",
			modify:  func(c *Config) { c.Intent.MinKeywords = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  addr: ":9090"
model:
  timeout: 30s
history:
  limit: 40
nats:
  url: "nats://localhost:4222"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Model.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Model.Timeout)
	}
	if cfg.History.Limit != 40 {
		t.Errorf("expected history limit 40, got %d", cfg.History.Limit)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected NATS URL, got %s", cfg.NATS.URL)
	}

	// Unspecified fields keep their defaults.
	if cfg.History.PromptWindow != 5 {
		t.Errorf("expected default prompt window 5, got %d", cfg.History.PromptWindow)
	}
	if cfg.Intent.MinWords != 50 {
		t.Errorf("expected default min words 50, got %d", cfg.Intent.MinWords)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{
		Server:  ServerConfig{Addr: ":7070"},
		History: HistoryConfig{Limit: 10},
		NATS:    NATSConfig{URL: "nats://prod:4222"},
	}

	base.Merge(other)

	if base.Server.Addr != ":7070" {
		t.Errorf("expected merged addr :7070, got %s", base.Server.Addr)
	}
	if base.History.Limit != 10 {
		t.Errorf("expected merged history limit 10, got %d", base.History.Limit)
	}
	if base.NATS.URL != "nats://prod:4222" {
		t.Errorf("expected merged NATS URL, got %s", base.NATS.URL)
	}

	// Zero values in other leave base untouched.
	if base.History.PromptWindow != 5 {
		t.Errorf("expected prompt window 5 after merge, got %d", base.History.PromptWindow)
	}
	if base.Server.APIPrefix != "/api/ai" {
		t.Errorf("expected api prefix /api/ai after merge, got %s", base.Server.APIPrefix)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":6060"
	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Server.Addr != ":6060" {
		t.Errorf("expected reloaded addr :6060, got %s", loaded.Server.Addr)
	}
}
