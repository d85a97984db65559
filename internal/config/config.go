package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPITimeout     = 10 * time.Second
	defaultDigestInterval = time.Hour
)

type Config struct {
	TelegramToken     string
	DBDSN             string
	APIBaseURL        string
	Environment       string
	LogLevel          string
	APITimeout        time.Duration
	DigestInterval    time.Duration
	Timezone          *time.Location
	MigrationsEnabled bool

	// EnvFileLoaded true, если значения подтянулись из .env
	EnvFileLoaded bool
}

// Load читает .env (если он есть), затем переменные окружения
func Load() (*Config, error) {
	loaded := godotenv.Load(".env") == nil
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	cfg.EnvFileLoaded = loaded
	return cfg, nil
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:     strings.TrimSpace(getenv("TELEGRAM_TOKEN")),
		DBDSN:             strings.TrimSpace(getenv("DB_DSN")),
		APIBaseURL:        strings.TrimRight(strings.TrimSpace(getenv("API_BASE_URL")), "/"),
		Environment:       getenv("ENV"),
		LogLevel:          getenv("LOG_LEVEL"),
		APITimeout:        defaultAPITimeout,
		DigestInterval:    defaultDigestInterval,
		Timezone:          time.UTC,
		MigrationsEnabled: true,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	if v := getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid API_TIMEOUT %q", v)
		}
		cfg.APITimeout = d
	}

	if v := getenv("DIGEST_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid DIGEST_INTERVAL %q", v)
		}
		cfg.DigestInterval = d
	}

	if v := getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", v, err)
		}
		cfg.Timezone = loc
	}

	if v := getenv("MIGRATIONS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MIGRATIONS_ENABLED %q", v)
		}
		cfg.MigrationsEnabled = b
	}

	return cfg, nil
}

// IsProduction включает JSON-логи
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
