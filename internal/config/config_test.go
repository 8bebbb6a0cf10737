package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonesrussell/feed-engine/internal/config"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Name != "feed-engine" {
		t.Errorf("service name = %q", cfg.Service.Name)
	}
	if cfg.Service.Port != 8094 {
		t.Errorf("port = %d, want 8094", cfg.Service.Port)
	}
	if cfg.Service.PageLimit != 20 || cfg.Service.MaxLimit != 50 {
		t.Errorf("page limits = %d/%d, want 20/50", cfg.Service.PageLimit, cfg.Service.MaxLimit)
	}
	if cfg.AI.Model != "claude-3-5-haiku-latest" {
		t.Errorf("ai model = %q", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 20*time.Second {
		t.Errorf("ai timeout = %v", cfg.AI.Timeout)
	}
	if cfg.Redis.Stream != "feed:audit" {
		t.Errorf("redis stream = %q", cfg.Redis.Stream)
	}
	if cfg.RateLimit.MaxRequestsPerMinute != 60 {
		t.Errorf("rate limit = %d", cfg.RateLimit.MaxRequestsPerMinute)
	}
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
service:
  port: 9000
  page_limit: 10
database:
  host: db.internal
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Service.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q", cfg.Database.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Unset fields still get defaults.
	if cfg.Database.Port != 5432 {
		t.Errorf("db port = %d, want default 5432", cfg.Database.Port)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("FEED_ENGINE_PORT", "7777")
	t.Setenv("POSTGRES_FEED_ENGINE_HOST", "env-host")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Port != 7777 {
		t.Errorf("port = %d, want env override 7777", cfg.Service.Port)
	}
	if cfg.Database.Host != "env-host" {
		t.Errorf("db host = %q, want env override", cfg.Database.Host)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		cfg.Service.JWTSecret = "secret"
		cfg.NewsAPI.BaseURL = "https://newsdata.io/api/1"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"valid", func(*config.Config) {}, false},
		{"missing jwt secret", func(c *config.Config) { c.Service.JWTSecret = "" }, true},
		{"missing news base url", func(c *config.Config) { c.NewsAPI.BaseURL = "" }, true},
		{"bad port", func(c *config.Config) { c.Service.Port = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
