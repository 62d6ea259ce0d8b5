package config

import (
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://peyjabanki.com/api/"

// Config holds runtime settings for the peyjabanki CLI.
//
// Fields:
//   - BaseURL: root of the prediction-game API; request paths resolve against it.
//   - RefreshURL: token refresh endpoint; empty means "<BaseURL>auth/refresh/".
//   - DatabasePath: SQLite file keeping the session between runs.
//   - RequestTimeout, RefreshTimeout: per-call limits of the API client.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL        string
	RefreshURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RefreshURL = ""
	c.DatabasePath = "peyjabanki.db"
	c.RequestTimeout = 15 * time.Second
	c.RefreshTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the environment, the JSON file and the
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}

	cfg.finish()
	return cfg, nil
}

// finish normalises the base URL and derives the refresh URL from it.
func (c *Config) finish() {
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.RefreshURL == "" {
		c.RefreshURL = refreshURLFor(c.BaseURL)
	}
}

func refreshURLFor(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "auth/refresh/"
	}
	return u.ResolveReference(&url.URL{Path: "auth/refresh/"}).String()
}
