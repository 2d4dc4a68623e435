package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"ruo.dev/internal/models"
)

// Config holds all application configuration
type Config struct {
	ServerAddr      string        `env:"PORTFOLIO_SERVER_ADDR" envDefault:":8080"`
	Env             string        `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel        string        `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	ContentPath     string        `env:"PORTFOLIO_CONTENT_PATH" envDefault:"data/portfolio.json"`
	StaticDir       string        `env:"PORTFOLIO_STATIC_DIR" envDefault:"static"`
	DiagramDir      string        `env:"PORTFOLIO_DIAGRAM_DIR" envDefault:"static"`
	DefaultLang     string        `env:"PORTFOLIO_DEFAULT_LANG" envDefault:"ko"`
	BootcampIDs     []string      `env:"PORTFOLIO_BOOTCAMP_IDS" envSeparator:","`
	RateLimit       float64       `env:"PORTFOLIO_RATE_LIMIT" envDefault:"20"`
	RateBurst       int           `env:"PORTFOLIO_RATE_BURST" envDefault:"40"`
	ShutdownTimeout time.Duration `env:"PORTFOLIO_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables and returns a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if _, ok := models.ParseLang(cfg.DefaultLang); !ok {
		return nil, fmt.Errorf("PORTFOLIO_DEFAULT_LANG must be one of ko, en; got %q", cfg.DefaultLang)
	}
	if cfg.RateLimit < 0 || cfg.RateBurst < 0 {
		return nil, fmt.Errorf("rate limit settings must not be negative")
	}

	return cfg, nil
}

// IsDevelopment returns true if the application is running in development mode
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Lang returns the configured fallback language
func (c Config) Lang() models.Lang {
	lang, ok := models.ParseLang(c.DefaultLang)
	if !ok {
		return models.DefaultLang
	}
	return lang
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
