package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("Database.MaxConns = %d, want 25", cfg.Database.MaxConns)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to false")
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Errorf("Cache.TTLSeconds = %d, want 300", cfg.Cache.TTLSeconds)
	}
	if cfg.Calendar.KeywordsPath != "" {
		t.Errorf("Calendar.KeywordsPath = %q, want empty", cfg.Calendar.KeywordsPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PLAN_SERVER_PORT", "9090")
	t.Setenv("PLAN_DATABASE_URL", "postgres://u:p@db:5432/plans")
	t.Setenv("PLAN_CACHE_ENABLED", "true")
	t.Setenv("PLAN_CALENDAR_KEYWORDS_PATH", "/etc/perencana/keywords.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://u:p@db:5432/plans" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true")
	}
	if cfg.Calendar.KeywordsPath != "/etc/perencana/keywords.yaml" {
		t.Errorf("Calendar.KeywordsPath = %q", cfg.Calendar.KeywordsPath)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("PLAN_SERVER_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{
			"missing database URL",
			func(c *Config) { c.Database.URL = "" },
			"PLAN_DATABASE_URL",
		},
		{
			"min conns above max",
			func(c *Config) { c.Database.MinConns = 50 },
			"PLAN_DATABASE_MIN_CONNS",
		},
		{
			"cache enabled without URL",
			func(c *Config) { c.Cache.Enabled = true; c.Cache.URL = "" },
			"PLAN_CACHE_URL",
		},
		{
			"negative cache TTL",
			func(c *Config) { c.Cache.TTLSeconds = -1 },
			"PLAN_CACHE_TTL_SECONDS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PLAN_TEST_BOOL", tt.value)
			if got := envBool("PLAN_TEST_BOOL", false); got != tt.want {
				t.Errorf("envBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
