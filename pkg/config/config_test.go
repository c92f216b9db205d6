package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %v, want :8080", cfg.Server.Address)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 168h", cfg.Auth.TokenTTL)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %v, want 5432", cfg.Postgres.Port)
	}
	if !cfg.IsDevelopment() {
		t.Error("default environment should be development")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server address", func(c *Config) { c.Server.Address = "" }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"empty postgres host", func(c *Config) { c.Postgres.Host = "" }},
		{"zero postgres port", func(c *Config) { c.Postgres.Port = 0 }},
		{"empty database", func(c *Config) { c.Postgres.Database = "" }},
		{"empty jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }},
		{"empty cors origins", func(c *Config) { c.CORS.AllowedOrigins = nil }},
		{"tracing enabled without url", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.JaegerURL = ""
		}},
		{"rate limiting enabled without rps", func(c *Config) {
			c.RateLimiting.Enabled = true
			c.RateLimiting.RequestsPerSecond = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %v, want default :8080", cfg.Server.Address)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("environment: production\nserver:\n  address: \":9090\"\npostgres:\n  database: pulse_test\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %v, want :9090", cfg.Server.Address)
	}
	if cfg.Postgres.Database != "pulse_test" {
		t.Errorf("Postgres.Database = %v, want pulse_test", cfg.Postgres.Database)
	}
	if cfg.IsDevelopment() {
		t.Error("environment should be production")
	}
	// Untouched keys keep defaults
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %v, want default 5432", cfg.Postgres.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STREAMPULSE_SERVER_ADDRESS", ":7070")
	t.Setenv("STREAMPULSE_JWT_SECRET", "env-secret")
	t.Setenv("STREAMPULSE_PG_PORT", "5433")
	t.Setenv("STREAMPULSE_CORS_ORIGINS", "http://app.example.com, http://admin.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("Server.Address = %v, want :7070", cfg.Server.Address)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("Auth.JWTSecret = %v, want env-secret", cfg.Auth.JWTSecret)
	}
	if cfg.Postgres.Port != 5433 {
		t.Errorf("Postgres.Port = %v, want 5433", cfg.Postgres.Port)
	}
	wantOrigins := []string{"http://app.example.com", "http://admin.example.com"}
	if len(cfg.CORS.AllowedOrigins) != len(wantOrigins) {
		t.Fatalf("CORS.AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, wantOrigins)
	}
	for i, want := range wantOrigins {
		if cfg.CORS.AllowedOrigins[i] != want {
			t.Errorf("CORS.AllowedOrigins[%d] = %v, want %v", i, cfg.CORS.AllowedOrigins[i], want)
		}
	}
}
