package config

import (
	"CipherBot/internal/core/domain"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BotConfig holds the Telegram connection settings.
type BotConfig struct {
	Token   string
	Mode    string // "polling" or "webhook"
	Polling PollingConfig
	Webhook WebhookConfig
}

// PollingConfig sizes the update worker pool (used by both modes).
type PollingConfig struct {
	WorkerPoolSize int
}

// WebhookConfig is only read when Mode is "webhook".
type WebhookConfig struct {
	URL        string
	ListenPort int
}

// PostgresConfig enables the operation history when URL is set.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv        string
	LogLevel      string
	EncryptionKey string
	MetricsAddr   string
	DefaultKind   domain.CipherKind
	Bot           BotConfig
	Postgres      PostgresConfig
}

// HistoryEnabled reports whether a database was configured.
func (c *Config) HistoryEnabled() bool {
	return c.Postgres.URL != ""
}

// IsDev reports whether we run in a development environment.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

var bindings = map[string]string{
	"app.env":                 "APP_ENV",
	"log.level":               "LOG_LEVEL",
	"encryption.key":          "ENCRYPTION_KEY",
	"metrics.addr":            "METRICS_ADDR",
	"cipher.default_kind":     "CIPHER_DEFAULT_KIND",
	"bot.token":               "BOT_TOKEN",
	"bot.mode":                "BOT_MODE",
	"bot.polling.worker_pool": "BOT_WORKER_POOL_SIZE",
	"bot.webhook.url":         "BOT_WEBHOOK_URL",
	"bot.webhook.listen_port": "BOT_WEBHOOK_PORT",
	"postgres.url":            "DATABASE_URL",
	"postgres.max_conns":      "DATABASE_MAX_CONNS",
}

// Load loads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("cipher.default_kind", string(domain.KindCaesar))
	v.SetDefault("bot.mode", "polling")
	v.SetDefault("bot.polling.worker_pool", 4)
	v.SetDefault("bot.webhook.listen_port", 8443)
	v.SetDefault("postgres.max_conns", 4)

	cfg := Config{
		AppEnv:        v.GetString("app.env"),
		LogLevel:      v.GetString("log.level"),
		EncryptionKey: v.GetString("encryption.key"),
		MetricsAddr:   v.GetString("metrics.addr"),
		Bot: BotConfig{
			Token: v.GetString("bot.token"),
			Mode:  strings.ToLower(v.GetString("bot.mode")),
			Polling: PollingConfig{
				WorkerPoolSize: v.GetInt("bot.polling.worker_pool"),
			},
			Webhook: WebhookConfig{
				URL:        strings.TrimRight(v.GetString("bot.webhook.url"), "/"),
				ListenPort: v.GetInt("bot.webhook.listen_port"),
			},
		},
		Postgres: PostgresConfig{
			URL:      v.GetString("postgres.url"),
			MaxConns: v.GetInt32("postgres.max_conns"),
		},
	}

	kind, err := domain.ParseKind(v.GetString("cipher.default_kind"))
	if err != nil {
		return nil, fmt.Errorf("CIPHER_DEFAULT_KIND: %w", err)
	}
	cfg.DefaultKind = kind

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bot.Token == "" {
		return errors.New("BOT_TOKEN is not set in environment or .env file")
	}

	switch c.Bot.Mode {
	case "polling":
	case "webhook":
		if c.Bot.Webhook.URL == "" {
			return errors.New("BOT_WEBHOOK_URL is required in webhook mode")
		}
	default:
		return fmt.Errorf("BOT_MODE must be 'polling' or 'webhook', got %q", c.Bot.Mode)
	}

	if c.Bot.Polling.WorkerPoolSize < 1 {
		return fmt.Errorf("BOT_WORKER_POOL_SIZE must be positive, got %d", c.Bot.Polling.WorkerPoolSize)
	}

	if c.HistoryEnabled() {
		if c.EncryptionKey == "" {
			return errors.New("ENCRYPTION_KEY is required when DATABASE_URL is set")
		}
		if len(c.EncryptionKey) != 64 {
			return fmt.Errorf("ENCRYPTION_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(c.EncryptionKey))
		}
	}

	return nil
}
