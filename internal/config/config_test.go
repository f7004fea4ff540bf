package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var configKeys = []string{
	"CONFIG_FILE",
	"API_PORT",
	"LOG_LEVEL",
	"GEMINI_API_KEY",
	"GEMINI_MODEL",
	"GEMINI_BASE_URL",
	"LLM_TIMEOUT_SECONDS",
	"LLM_BREAKER_ENABLED",
	"LLM_BREAKER_MIN_REQUESTS",
	"LLM_BREAKER_FAILURE_RATIO",
	"LLM_BREAKER_OPEN_TIMEOUT_SECONDS",
	"ALLOWED_ORIGINS",
	"MAX_UPLOAD_BYTES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.GeminiAPIKey != "" {
		t.Fatalf("expected empty api key by default")
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Fatalf("expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.LLMTimeout() != 60*time.Second {
		t.Fatalf("expected 60s llm timeout, got %s", cfg.LLMTimeout())
	}
	if !cfg.LLMBreakerEnabled || cfg.LLMBreakerMinRequests != 10 || cfg.LLMBreakerFailureRatio != 0.5 {
		t.Fatalf("unexpected breaker defaults: %+v", cfg)
	}
	if cfg.LLMBreakerOpenTimeout() != 30*time.Second {
		t.Fatalf("expected 30s open timeout, got %s", cfg.LLMBreakerOpenTimeout())
	}
	want := []string{"https://email-assistant.onrender.com", "http://localhost:5500", "http://127.0.0.1:5500"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("unexpected default origins: %v", cfg.AllowedOrigins)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TIMEOUT_SECONDS", "15")
	t.Setenv("LLM_BREAKER_ENABLED", "false")
	t.Setenv("LLM_BREAKER_FAILURE_RATIO", "0.25")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLMTimeoutSeconds != 15 || cfg.LLMBreakerEnabled || cfg.LLMBreakerFailureRatio != 0.25 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("invalid value should fall back to default, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadClampsNonPositiveDurations(t *testing.T) {
	for _, value := range []string{"0", "-5"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LLM_TIMEOUT_SECONDS", value)
			t.Setenv("LLM_BREAKER_OPEN_TIMEOUT_SECONDS", value)
			t.Setenv("MAX_UPLOAD_BYTES", value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.LLMTimeout() != 60*time.Second {
				t.Fatalf("expected 60s llm timeout, got %s", cfg.LLMTimeout())
			}
			if cfg.LLMBreakerOpenTimeout() != 30*time.Second {
				t.Fatalf("expected 30s open timeout, got %s", cfg.LLMBreakerOpenTimeout())
			}
			if cfg.MaxUploadBytes != 10<<20 {
				t.Fatalf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
			}
		})
	}
}

func TestLoadConfigFileIsOverriddenByEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
API_PORT: 9000
GEMINI_MODEL: gemini-2.0-flash
llm_breaker_enabled: false
ALLOWED_ORIGINS:
  - https://mail.example
  - http://localhost:3000
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_MODEL", "gemini-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9000" {
		t.Fatalf("expected port from file, got %q", cfg.APIPort)
	}
	if cfg.GeminiModel != "gemini-env" {
		t.Fatalf("expected env to override file, got %q", cfg.GeminiModel)
	}
	if cfg.LLMBreakerEnabled {
		t.Fatalf("expected lower-case file key to apply")
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://mail.example", "http://localhost:3000"}) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsBrokenConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gemini:\n  model: x\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected nested mapping to be rejected")
	}

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}
