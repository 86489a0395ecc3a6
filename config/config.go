package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the bot needs from the environment.
type Config struct {
	BotToken      string
	MonadRPCURL   string
	EncryptionKey string
	WebhookURL    string // empty = long polling
	ListenAddr    string
	RedisAddr     string // empty = no price cache
	DBPath        string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; deployments may set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		MonadRPCURL:   os.Getenv("MONAD_RPC_URL"),
		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		DBPath:        os.Getenv("DB_PATH"),
	}

	// Set defaults if not specified
	if cfg.MonadRPCURL == "" {
		cfg.MonadRPCURL = "https://testnet-rpc.monad.xyz"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "bot.db"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the keys the process cannot run without.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable not set")
	}
	if len(c.EncryptionKey) != 32 {
		return fmt.Errorf("ENCRYPTION_KEY must be exactly 32 characters, got %d", len(c.EncryptionKey))
	}
	return nil
}
