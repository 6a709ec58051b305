package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadFrom_Valid(t *testing.T) {
	p := writeConfig(t, `server:
  host: "127.0.0.1"
  port: ":9000"
joke:
  url: "http://jokes.local/"
  timeout: 2s
greeting:
  default_name: "Robin"
rate_limiter:
  enable_user_limiter: true
  user_limit: 20
  interval: 1h
`)
	cfg := LoadFrom(p)
	if cfg.Server.Port != ":9000" || cfg.Server.Host != "127.0.0.1" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Joke.URL != "http://jokes.local/" || cfg.Joke.Timeout != 2*time.Second {
		t.Fatalf("unexpected joke config: %+v", cfg.Joke)
	}
	if cfg.Greeting.DefaultName != "Robin" {
		t.Fatalf("unexpected default name: %q", cfg.Greeting.DefaultName)
	}
	if cfg.RateLimiter.UserLimit != 20 || cfg.RateLimiter.Interval != time.Hour {
		t.Fatalf("unexpected rate limiter config: %+v", cfg.RateLimiter)
	}
	// untouched sections keep their defaults
	if cfg.Logger.Level != "info" || cfg.Joke.UserAgent == "" {
		t.Fatalf("expected defaults to survive partial file, got %+v", cfg)
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	def := Default()
	if cfg != def {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Greeting.DefaultName != "Stephanie" {
		t.Fatalf("unexpected default name %q", cfg.Greeting.DefaultName)
	}
}

func TestLoadFrom_PanicsOnInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "malformed yaml", yml: "server: [\n"},
		{name: "relative joke url", yml: "joke:\n  url: /jokes\n"},
		{name: "unsupported scheme", yml: "joke:\n  url: ftp://jokes.local/\n"},
		{name: "zero timeout", yml: "joke:\n  timeout: 0s\n"},
		{name: "empty default name", yml: "greeting:\n  default_name: ''\n"},
		{name: "negative user limit", yml: "rate_limiter:\n  user_limit: -1\n"},
		{name: "zero interval", yml: "rate_limiter:\n  interval: 0s\n"},
		{name: "limiter enabled without limit", yml: "rate_limiter:\n  enable_user_limiter: true\n  user_limit: 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.yml)
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			_ = LoadFrom(p)
		})
	}
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	p := writeConfig(t, `greeting:
  default_name: "Env"
`)
	t.Setenv("CONFIG_PATH", p)
	cfg := Load()
	if cfg.Greeting.DefaultName != "Env" {
		t.Fatalf("expected CONFIG_PATH to be used")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JOKE_API_URL", "http://127.0.0.1:1/")
	t.Setenv("JOKE_TIMEOUT", "250ms")
	t.Setenv("REDIS_HOST", "127.0.0.1:6379")

	cfg := Load()
	if cfg.Server.Port != ":9999" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("unexpected level %q", cfg.Logger.Level)
	}
	if cfg.Joke.URL != "http://127.0.0.1:1/" || cfg.Joke.Timeout != 250*time.Millisecond {
		t.Fatalf("unexpected joke config %+v", cfg.Joke)
	}
	if cfg.Cache.RedisHost != "127.0.0.1:6379" {
		t.Fatalf("unexpected redis host %q", cfg.Cache.RedisHost)
	}
}

func TestLoad_PortWithLeadingColon(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", ":9000")

	cfg := Load()
	if cfg.Server.Port != ":9000" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
}

func TestLoad_PanicsOnInvalidEnvTimeout(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("JOKE_TIMEOUT", "soon")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = Load()
}
