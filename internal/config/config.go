package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Prefork bool   `yaml:"prefork"`
}

// LoggerConfig controls log output and file rotation.
type LoggerConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// JokeConfig points at the remote joke API.
type JokeConfig struct {
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// GreetingConfig holds the name used when a request names nobody.
type GreetingConfig struct {
	DefaultName string `yaml:"default_name"`
}

// RateLimiterConfig limits inbound requests per client.
type RateLimiterConfig struct {
	EnableUserLimiter bool          `yaml:"enable_user_limiter"`
	UserLimit         int           `yaml:"user_limit"`
	Interval          time.Duration `yaml:"interval"`
}

// CacheConfig locates the optional redis used for limiter state.
type CacheConfig struct {
	RedisHost   string `yaml:"redis_host"`
	RateLimitDB int    `yaml:"rate_limit_db"`
}

// Config is the full service configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logger      LoggerConfig      `yaml:"logger"`
	Joke        JokeConfig        `yaml:"joke"`
	Greeting    GreetingConfig    `yaml:"greeting"`
	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`
	Cache       CacheConfig       `yaml:"cache"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: ":8080"},
		Logger: LoggerConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Joke: JokeConfig{
			URL:       "https://icanhazdadjoke.com/",
			Timeout:   5 * time.Second,
			UserAgent: "hellojoke (https://github.com/hellojoke/hellojoke)",
		},
		Greeting:    GreetingConfig{DefaultName: "Stephanie"},
		RateLimiter: RateLimiterConfig{Interval: time.Minute},
	}
}

// Load reads the file named by CONFIG_PATH (config.yaml when unset), after
// loading a local .env file, and applies environment overrides on top.
// It panics on invalid configuration.
func Load() Config {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg := read(path)
	if err := applyEnv(&cfg); err != nil {
		panic(fmt.Sprintf("invalid environment: %v", err))
	}
	mustValidate(cfg)
	return cfg
}

// LoadFrom reads the YAML file at path on top of Default. A missing file
// yields the defaults. It panics on unreadable or invalid configuration.
func LoadFrom(path string) Config {
	cfg := read(path)
	mustValidate(cfg)
	return cfg
}

func read(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg
	}
	if err != nil {
		panic(fmt.Sprintf("read config %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(fmt.Sprintf("parse config %s: %v", path, err))
	}
	return cfg
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("JOKE_API_URL"); v != "" {
		cfg.Joke.URL = v
	}
	if v := os.Getenv("JOKE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JOKE_TIMEOUT: %w", err)
		}
		cfg.Joke.Timeout = d
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Cache.RedisHost = v
	}
	return nil
}

func mustValidate(cfg Config) {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
}

// Validate reports the first invalid setting.
func (cfg Config) Validate() error {
	u, err := url.Parse(cfg.Joke.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("joke.url must be an absolute http(s) URL, got %q", cfg.Joke.URL)
	}
	if cfg.Joke.Timeout <= 0 {
		return errors.New("joke.timeout must be positive")
	}
	if cfg.Greeting.DefaultName == "" {
		return errors.New("greeting.default_name must not be empty")
	}
	if cfg.RateLimiter.UserLimit < 0 {
		return errors.New("rate_limiter.user_limit must not be negative")
	}
	if cfg.RateLimiter.EnableUserLimiter && cfg.RateLimiter.UserLimit == 0 {
		return errors.New("rate_limiter.user_limit must be positive when enable_user_limiter is set")
	}
	if cfg.RateLimiter.Interval <= 0 {
		return errors.New("rate_limiter.interval must be positive")
	}
	return nil
}
