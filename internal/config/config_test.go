package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "local")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "bizops")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_LocalDefaults(t *testing.T) {
	setBaseEnv(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Errorf("expected local sslmode default disable, got %q", c.DB.SSLMode)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected default access TTL, got %v", c.Auth.AccessTokenTTL)
	}
	if c.LLM.Timeout != 60*time.Second {
		t.Errorf("expected default LLM timeout, got %v", c.LLM.Timeout)
	}
	if c.HTTPAddr() != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr())
	}
	if c.RedisAddr() != "localhost:6379" {
		t.Errorf("RedisAddr = %q", c.RedisAddr())
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DB_HOST")
	}
}

func TestLoad_ProductionRequiresMore(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	if err == nil {
		t.Fatal("expected production validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"DB_SSLMODE", "RABBITMQ_URL", "JWT_ISSUER", "JWT_AUDIENCE"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error mentioning %s, got: %s", want, msg)
		}
	}
}

func TestLoad_LLMModelRequiredWithBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LLM_BASE_URL", "http://localhost:11434/v1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when LLM_BASE_URL set without LLM_MODEL")
	}

	t.Setenv("LLM_MODEL", "llama3")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
