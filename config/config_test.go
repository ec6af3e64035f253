package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func parseConfig(t *testing.T) AppConfig {
	t.Helper()

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := parseConfig(t)
	cfg.Sanitize()

	if cfg.API.BaseURL == "" {
		t.Error("expected a default API base URL")
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("expected 15s API timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Session.Store != StoreBackendFile {
		t.Errorf("expected file session store, got %q", cfg.Session.Store)
	}
	if cfg.Sync.PollInterval != 30*time.Second {
		t.Errorf("expected 30s poll interval, got %v", cfg.Sync.PollInterval)
	}
	if !cfg.Push.Enabled {
		t.Error("expected push registration enabled by default")
	}
	if cfg.Session.InstallationID == "" {
		t.Error("expected Sanitize to generate an installation id")
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:4000/api")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SYNC_POLL_INTERVAL", "5s")
	t.Setenv("INSTALLATION_ID", "install-1")
	t.Setenv("REDIS_URI", "redis-host:6379")

	cfg := parseConfig(t)
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://localhost:4000/api" {
		t.Errorf("unexpected base URL: %q", cfg.API.BaseURL)
	}
	if cfg.Session.Store != StoreBackendRedis {
		t.Errorf("unexpected store backend: %q", cfg.Session.Store)
	}
	if cfg.Sync.PollInterval != 5*time.Second {
		t.Errorf("unexpected poll interval: %v", cfg.Sync.PollInterval)
	}
	if cfg.Session.InstallationID != "install-1" {
		t.Errorf("unexpected installation id: %q", cfg.Session.InstallationID)
	}
	if cfg.Redis.URI != "redis-host:6379" {
		t.Errorf("unexpected redis URI: %q", cfg.Redis.URI)
	}
}

func TestStoreBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    StoreBackend
		expectError bool
	}{
		{input: "file", expected: StoreBackendFile},
		{input: "redis", expected: StoreBackendRedis},
		{input: "REDIS", expected: StoreBackendRedis},
		{input: "sqlite", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		var backend StoreBackend
		err := backend.UnmarshalText([]byte(tt.input))
		if tt.expectError {
			if err == nil {
				t.Errorf("UnmarshalText(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("UnmarshalText(%q): %v", tt.input, err)
			continue
		}
		if backend != tt.expected {
			t.Errorf("UnmarshalText(%q) = %q, want %q", tt.input, backend, tt.expected)
		}
	}
}

func TestStoreBackend_InvalidEnvValue(t *testing.T) {
	t.Setenv("SESSION_STORE", "cloud")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected parse to fail for invalid SESSION_STORE")
	}
}

func TestSanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{
		API:  APIConfig{Timeout: time.Millisecond},
		Sync: SyncConfig{PollInterval: 10 * time.Millisecond},
	}
	cfg.Sanitize()

	if cfg.API.Timeout != time.Second {
		t.Errorf("expected timeout clamped to 1s, got %v", cfg.API.Timeout)
	}
	if cfg.Sync.PollInterval != time.Second {
		t.Errorf("expected poll interval clamped to 1s, got %v", cfg.Sync.PollInterval)
	}
}

func TestDetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := parseConfig(t)
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}

func TestAuthConfig_HasCredentials(t *testing.T) {
	if (AuthConfig{Email: "a@b.c"}).HasCredentials() {
		t.Error("email alone should not count as credentials")
	}
	if !(AuthConfig{Email: "a@b.c", Password: "x"}).HasCredentials() {
		t.Error("email plus password should count as credentials")
	}
}
