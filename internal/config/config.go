// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BackendURL string `yaml:"backend_url" env:"BACKEND_URL"`
	//Job alert reporting (optional; watcher is disabled without a token)
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	//Paths
	SessionPath string `yaml:"session_path"`
	CachePath   string `yaml:"cache_path"`
	//Watcher poll interval in minutes
	PollMinutes int `yaml:"poll_minutes"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if url := os.Getenv("BACKEND_URL"); url != "" {
		cfg.BackendURL = url
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.SessionPath == "" {
		cfg.SessionPath = ".session"
	}

	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}

	if cfg.PollMinutes <= 0 {
		cfg.PollMinutes = 15
	}

	//Validate required fields
	if cfg.BackendURL == "" {
		log.Fatal("BACKEND_URL is required")
	}

	return cfg
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollMinutes) * time.Minute
}
