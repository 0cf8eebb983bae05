package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Recommend.HistoryWeight != 0.5 {
		t.Errorf("expected HistoryWeight=0.5, got %v", cfg.Recommend.HistoryWeight)
	}

	if cfg.Recommend.DissentPenalty != 0.5 {
		t.Errorf("expected DissentPenalty=0.5, got %v", cfg.Recommend.DissentPenalty)
	}

	if cfg.Recommend.RecommendationThreshold != 0.6 {
		t.Errorf("expected RecommendationThreshold=0.6, got %v", cfg.Recommend.RecommendationThreshold)
	}

	if cfg.MCP.Transport != "stdio" {
		t.Errorf("expected Transport=stdio, got %s", cfg.MCP.Transport)
	}
}

func TestValidate(t *testing.T) {
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
			name: "missing database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "dissent penalty above one",
			modify: func(c *Config) {
				c.Recommend.DissentPenalty = 1.5
			},
			wantErr: true,
		},
		{
			name: "negative history weight",
			modify: func(c *Config) {
				c.Recommend.HistoryWeight = -0.1
			},
			wantErr: true,
		},
		{
			name: "zero parallel threshold",
			modify: func(c *Config) {
				c.Recommend.ParallelThreshold = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "chatty"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[database]
path = "/tmp/gamenight-test.db"

[recommend]
dissent_penalty = 0.8
top_n = 3

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/gamenight-test.db" {
		t.Errorf("Database.Path = %s, want /tmp/gamenight-test.db", cfg.Database.Path)
	}
	if cfg.Recommend.DissentPenalty != 0.8 {
		t.Errorf("DissentPenalty = %v, want 0.8", cfg.Recommend.DissentPenalty)
	}
	if cfg.Recommend.HistoryWeight != 0.5 {
		t.Errorf("HistoryWeight = %v, want default 0.5", cfg.Recommend.HistoryWeight)
	}

	engine := cfg.Recommend.EngineConfig()
	if engine.TopN != 3 || engine.DissentPenalty != 0.8 {
		t.Errorf("EngineConfig() = %+v", engine)
	}
	if engine.BreakdownRetentionLimit == 0 {
		t.Error("EngineConfig() lost the breakdown retention default")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load(missing) error = %v, want not found", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[recommend]\ndissent_penalty = 2.0\n"), 0600)
	if _, err := Load(bad); err == nil {
		t.Error("expected validation error")
	}

	garbled := filepath.Join(dir, "garbled.toml")
	os.WriteFile(garbled, []byte("[recommend\n"), 0600)
	if _, err := Load(garbled); err == nil {
		t.Error("expected parse error")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "dir", "gamenight.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(cfg.Database.Path)); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
