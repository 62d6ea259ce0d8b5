package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/peyjabanki/internal/flagx"
	"github.com/dmitrijs2005/peyjabanki/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// timex.Duration, so the file may hold "15s" or integer nanoseconds.
type JSONConfig struct {
	BaseURL        string         `json:"base_url"`
	RefreshURL     string         `json:"refresh_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	RefreshTimeout timex.Duration `json:"refresh_timeout"`
	LogLevel       string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config. Only keys present
// in the file are applied.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.RefreshURL, jc.RefreshURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshTimeout.Duration > 0 {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
