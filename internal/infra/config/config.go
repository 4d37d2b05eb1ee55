package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StorageJSON     = "json"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"

	DefaultShareBaseURL = "https://seashell-app-onfk3.ondigitalocean.app"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token string `yaml:"token"`
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Storage Storage `yaml:"storage"`
	API     API     `yaml:"api"`
	Share   struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"share"`
	Logger struct {
		Mode string `yaml:"mode"`
	} `yaml:"logger"`
}

// Storage выбор бэкендов для local и session хранилищ
type Storage struct {
	Local      string        `yaml:"local"`
	Session    string        `yaml:"session"`
	JSONFile   string        `yaml:"json_file"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// API параметры удалённого сервиса Teacher Assistance
type API struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	FlashcardTimeout time.Duration `yaml:"flashcard_timeout"`
}

// LoadConfig читает YAML-файл, затем .env и переменные окружения поверх него
func LoadConfig(filename string) (*Config, error) {
	const op = "config.LoadConfig"

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}(f)

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("%s: failed to decode %s: %w", op, filename, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := config.applyEnv(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	setString(&c.TelegramBot.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.API.BaseURL, "API_BASE_URL")
	setString(&c.Share.BaseURL, "SHARE_BASE_URL")
	setString(&c.Database.Password, "DATABASE_PASSWORD")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Logger.Mode, "LOG_MODE")
	setString(&c.Storage.Local, "STORAGE_LOCAL")
	setString(&c.Storage.Session, "STORAGE_SESSION")

	if v := strings.TrimSpace(os.Getenv("API_TIMEOUT")); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("FLASHCARD_TIMEOUT")); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("FLASHCARD_TIMEOUT: %w", err)
		}
		c.API.FlashcardTimeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Storage.Local == "" {
		c.Storage.Local = StorageMemory
	}
	if c.Storage.Session == "" {
		c.Storage.Session = StorageMemory
	}
	if c.Storage.JSONFile == "" {
		c.Storage.JSONFile = "storage.json"
	}
	if c.Storage.SessionTTL == 0 {
		c.Storage.SessionTTL = 24 * time.Hour
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 15 * time.Second
	}
	if c.API.FlashcardTimeout == 0 {
		c.API.FlashcardTimeout = 20 * time.Second
	}
	if c.Share.BaseURL == "" {
		c.Share.BaseURL = DefaultShareBaseURL
	}
	c.Share.BaseURL = strings.TrimRight(c.Share.BaseURL, "/")
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.Logger.Mode == "" {
		c.Logger.Mode = "dev"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Local {
	case StorageMemory, StorageJSON, StoragePostgres:
	default:
		return fmt.Errorf("unknown local storage backend %q", c.Storage.Local)
	}
	switch c.Storage.Session {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown session storage backend %q", c.Storage.Session)
	}
	if c.Storage.Session == StorageRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis session storage requires redis.addr")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	return nil
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// parseDuration принимает "20s" или число секунд
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
