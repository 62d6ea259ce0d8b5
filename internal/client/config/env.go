package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// envFile is loaded into the process environment when present. Variables
// already set win over the file.
var envFile = ".env"

// envConfig maps PEYJABANKI_* variables. Fields whose variable is unset keep
// the value they had before.
type envConfig struct {
	BaseURL        string        `env:"PEYJABANKI_BASE_URL"`
	RefreshURL     string        `env:"PEYJABANKI_REFRESH_URL"`
	DatabasePath   string        `env:"PEYJABANKI_DB_PATH"`
	RequestTimeout time.Duration `env:"PEYJABANKI_REQUEST_TIMEOUT"`
	RefreshTimeout time.Duration `env:"PEYJABANKI_REFRESH_TIMEOUT"`
	LogLevel       string        `env:"PEYJABANKI_LOG_LEVEL"`
}

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	ec := envConfig{
		BaseURL:        cfg.BaseURL,
		RefreshURL:     cfg.RefreshURL,
		DatabasePath:   cfg.DatabasePath,
		RequestTimeout: cfg.RequestTimeout,
		RefreshTimeout: cfg.RefreshTimeout,
		LogLevel:       cfg.LogLevel,
	}
	if err := cleanenv.ReadEnv(&ec); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	cfg.BaseURL = ec.BaseURL
	cfg.RefreshURL = ec.RefreshURL
	cfg.DatabasePath = ec.DatabasePath
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.RefreshTimeout = ec.RefreshTimeout
	cfg.LogLevel = ec.LogLevel
	return nil
}
