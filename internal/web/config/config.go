package config

import (
	"time"

	"github.com/arpansethi30/finagent/pkg/config"
)

// Analyzer holds the configuration for the analytics backend client.
type Analyzer struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// Health holds the configuration for the backend health monitor.
type Health struct {
	PollSchedule string        `mapstructure:"poll_schedule"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// Telegram holds configuration for the health alert notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// History holds configuration for the analysis activity log.
type History struct {
	MaxListLimit int `mapstructure:"max_list_limit"`
}

// Config holds the full configuration for the web service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Analyzer Analyzer        `mapstructure:"analyzer"`
	Health   Health          `mapstructure:"health"`
	Telegram Telegram        `mapstructure:"telegram"`
	History  History         `mapstructure:"history"`
}

// Load loads the web service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
