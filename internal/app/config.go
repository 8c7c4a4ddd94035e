package app

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config controls where progress is kept and how answers are graded.
type Config struct {
	DataDir         string  `env:"CALCQUEST_DATA_DIR"`
	LogPath         string  `env:"CALCQUEST_LOG"`
	LogLevel        string  `env:"CALCQUEST_LOG_LEVEL"`
	Storage         string  `env:"CALCQUEST_STORAGE"`
	CatalogPath     string  `env:"CALCQUEST_CATALOG"`
	AnswerTolerance float64 `env:"CALCQUEST_TOLERANCE"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		Storage:         "sqlite",
		AnswerTolerance: 0.001,
	}
}

// LoadConfig starts from DefaultConfig and applies CALCQUEST_* environment
// variables on top.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case "", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage %q", c.Storage)
	}
	if c.Storage == "" {
		c.Storage = "sqlite"
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if math.IsNaN(c.AnswerTolerance) || c.AnswerTolerance < 0 {
		return fmt.Errorf("invalid answer tolerance %v", c.AnswerTolerance)
	}
	if c.AnswerTolerance == 0 {
		c.AnswerTolerance = 0.001
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "calcquest")
	}

	return nil
}
