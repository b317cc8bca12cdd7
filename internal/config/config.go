// Package config loads agent-pet settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/agent-pet/internal/model"
	"github.com/rcliao/agent-pet/internal/store"
)

// Config holds every setting the CLI needs.
type Config struct {
	Name    string `env:"PET_NAME" envDefault:"奶龙"`
	Species string `env:"PET_SPECIES" envDefault:"cat"`

	StoreDriver string `env:"PET_STORE_DRIVER" envDefault:"sqlite"`
	StorePath   string `env:"PET_STORE_PATH"`
	Transcript  string `env:"PET_TRANSCRIPT" envDefault:"chat_history.json"`

	APIKey     string        `env:"DEEPSEEK_API_KEY"`
	BaseURL    string        `env:"DEEPSEEK_BASE_URL" envDefault:"https://api.deepseek.com"`
	Model      string        `env:"PET_MODEL" envDefault:"deepseek-chat"`
	LLMRetries int           `env:"PET_LLM_RETRIES" envDefault:"2"`
	LLMTimeout time.Duration `env:"PET_LLM_TIMEOUT" envDefault:"0s"`

	SerpAPIKey      string `env:"SERPAPI_API_KEY"`
	SerpAPIEndpoint string `env:"SERPAPI_ENDPOINT" envDefault:"https://serpapi.com/search"`

	LogLevel string `env:"PET_LOG_LEVEL" envDefault:"warn"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// ResolvedStorePath returns StorePath, or the per-driver default under
// ~/.agent-pet when it is unset.
func (c *Config) ResolvedStorePath() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	return DefaultStorePath(c.StoreDriver)
}

// DefaultStorePath is where driver keeps its data by default.
func DefaultStorePath(driver string) string {
	home, _ := os.UserHomeDir()
	dir := filepath.Join(home, ".agent-pet")
	switch driver {
	case store.DriverFile:
		return filepath.Join(dir, "pet.json")
	case store.DriverBadger:
		return filepath.Join(dir, "pet.badger")
	default:
		return filepath.Join(dir, "pet.db")
	}
}

// Validate rejects unknown drivers, species and log levels.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case store.DriverSQLite, store.DriverFile, store.DriverBadger:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if _, err := model.ParseSpecies(c.Species); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.LLMRetries < 0 {
		return fmt.Errorf("PET_LLM_RETRIES must not be negative, got %d", c.LLMRetries)
	}
	return nil
}
