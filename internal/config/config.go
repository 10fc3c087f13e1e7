package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Game        GameConfig
	Catalog     CatalogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// GameConfig holds gameplay settings
type GameConfig struct {
	TimedSeconds        int
	ResultRetentionDays int
}

// CatalogConfig says where manifests and audio come from
type CatalogConfig struct {
	Source       string // directory or http(s) base URL of the manifests
	AudioDir     string
	AudioBaseURL string
	HTTPAddr     string // empty disables the catalog server
	CORSOrigins  []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	timed, err := getEnvInt("TIMED_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	retention, err := getEnvInt("RESULT_RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "koreanvocab"),
			User:     getEnv("DB_USER", "koreanvocab"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Game: GameConfig{
			TimedSeconds:        timed,
			ResultRetentionDays: retention,
		},
		Catalog: CatalogConfig{
			Source:       getEnv("CATALOG_SOURCE", "./data"),
			AudioDir:     getEnv("AUDIO_DIR", "./data"),
			AudioBaseURL: os.Getenv("AUDIO_BASE_URL"),
			HTTPAddr:     os.Getenv("CATALOG_HTTP_ADDR"),
			CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Game.TimedSeconds <= 0 {
		return nil, fmt.Errorf("TIMED_SECONDS must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
