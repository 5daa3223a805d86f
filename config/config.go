package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DomainFiles []string `yaml:"domainFiles"`
	Domains     []string `yaml:"domains"`

	IntervalMinutes     int `yaml:"intervalMinutes"`
	Concurrency         int `yaml:"concurrency"`
	CheckTimeoutSeconds int `yaml:"checkTimeoutSeconds"`
	QueryTimeoutSeconds int `yaml:"queryTimeoutSeconds"`

	RateLimit RateLimit `yaml:"rateLimit"`
	Retry     Retry     `yaml:"retry"`
	State     State     `yaml:"state"`

	// TLDs overrides or extends the built-in registry table.
	TLDs map[string]TLDOverride `yaml:"tlds"`

	Simulation         bool              `yaml:"simulation"`
	SimulationOutcomes map[string]string `yaml:"simulationOutcomes"`

	Telegram Telegram `yaml:"telegram"`
	Discord  Discord  `yaml:"discord"`
	Webhook  Webhook  `yaml:"webhook"`
	Email    Email    `yaml:"email"`
}

type RateLimit struct {
	MinDelaySeconds float64            `yaml:"minDelaySeconds"`
	PerSource       map[string]float64 `yaml:"perSource"`
}

type Retry struct {
	MaxAttempts      int     `yaml:"maxAttempts"`
	BaseDelaySeconds float64 `yaml:"baseDelaySeconds"`
	MaxDelaySeconds  float64 `yaml:"maxDelaySeconds"`
}

type State struct {
	Backend    string `yaml:"backend"` // "file" or "sqlite"
	Path       string `yaml:"path"`
	HMACSecret string `yaml:"hmacSecret"`
}

type TLDOverride struct {
	RDAP  string `yaml:"rdap"`
	WHOIS string `yaml:"whois"`
}

type Telegram struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatID"`
}

type Discord struct {
	WebhookURL string `yaml:"webhookURL"`
}

type Webhook struct {
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

type Email struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

var Cfg Config

func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	Cfg = cfg
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.CheckTimeoutSeconds <= 0 {
		cfg.CheckTimeoutSeconds = 60
	}
	if cfg.QueryTimeoutSeconds <= 0 {
		cfg.QueryTimeoutSeconds = 10
	}
	if cfg.RateLimit.MinDelaySeconds <= 0 {
		cfg.RateLimit.MinDelaySeconds = 1
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.BaseDelaySeconds <= 0 {
		cfg.Retry.BaseDelaySeconds = 0.5
	}
	if cfg.Retry.MaxDelaySeconds <= 0 {
		cfg.Retry.MaxDelaySeconds = 8
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = "file"
	}
	if cfg.State.Path == "" {
		cfg.State.Path = "domainwatch_state.json"
	}
}
