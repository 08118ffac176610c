package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token string `yaml:"token" envconfig:"BOT_TOKEN"`
}

// WebhookConfig specifies the public webhook endpoint and local listener.
type WebhookConfig struct {
	// URL is the public base URL the messaging provider delivers updates to.
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
	// SecretPath is the URL path segment updates are posted to.
	// Defaults to the bot token, matching the provider's usual setup.
	SecretPath string `yaml:"secret_path" envconfig:"WEBHOOK_SECRET_PATH"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// GeneratorConfig tunes the identity generator and the cosmetic
// progress sequence rendered while profiles are produced.
type GeneratorConfig struct {
	FooterAd        bool `yaml:"footer_ad" envconfig:"GENERATOR_FOOTER_AD"`
	ProgressDelayMS int  `yaml:"progress_delay_ms" envconfig:"GENERATOR_PROGRESS_DELAY_MS"`
}

// Config aggregates the application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	Generator GeneratorConfig `yaml:"generator"`
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path skips the file and relies on the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required configuration fields and adjusts defaults.
// A missing bot token or public webhook URL is a startup error.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("telegram token is required")
	}
	if strings.TrimSpace(cfg.Webhook.URL) == "" {
		return fmt.Errorf("webhook.url is required")
	}
	cfg.Webhook.URL = strings.TrimRight(strings.TrimSpace(cfg.Webhook.URL), "/")

	if strings.TrimSpace(cfg.Webhook.Listen) == "" {
		cfg.Webhook.Listen = "0.0.0.0"
	}
	if cfg.Webhook.Port == 0 {
		cfg.Webhook.Port = 8443
	}
	if cfg.Webhook.Port < 0 {
		return fmt.Errorf("webhook.port must be > 0")
	}

	cfg.Webhook.SecretPath = strings.Trim(strings.TrimSpace(cfg.Webhook.SecretPath), "/")
	if cfg.Webhook.SecretPath == "" {
		cfg.Webhook.SecretPath = cfg.Telegram.Token
	}

	if cfg.Generator.ProgressDelayMS < 0 {
		return fmt.Errorf("generator.progress_delay_ms must be >= 0")
	}
	if cfg.Generator.ProgressDelayMS == 0 {
		cfg.Generator.ProgressDelayMS = 500
	}

	return nil
}
