package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Webhook:  WebhookConfig{URL: "https://bot.example.com/"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Webhook.Listen != "0.0.0.0" {
		t.Errorf("listen = %q", cfg.Webhook.Listen)
	}
	if cfg.Webhook.Port != 8443 {
		t.Errorf("port = %d", cfg.Webhook.Port)
	}
	if cfg.Webhook.SecretPath != "123:abc" {
		t.Errorf("secret path = %q, expected token fallback", cfg.Webhook.SecretPath)
	}
	if cfg.Webhook.URL != "https://bot.example.com" {
		t.Errorf("url = %q, expected trailing slash trimmed", cfg.Webhook.URL)
	}
	if cfg.Generator.ProgressDelayMS != 500 {
		t.Errorf("progress delay = %d", cfg.Generator.ProgressDelayMS)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = "  "
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestNormalizeRequiresWebhookURL(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.URL = ""
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "webhook.url") {
		t.Fatalf("expected webhook.url error, got %v", err)
	}
}

func TestNormalizeCustomSecretPath(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.SecretPath = "/hook/secret/"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Webhook.SecretPath != "hook/secret" {
		t.Errorf("secret path = %q", cfg.Webhook.SecretPath)
	}
}
