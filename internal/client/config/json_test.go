package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"base_url":        "http://www.example/api/",
		"request_timeout": "20s",
		"refresh_timeout": 2000000000,
	})

	t.Run("loads from -config", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{DatabasePath: "keep.db"}
		require.NoError(t, parseJSON(cfg))

		assert.Equal(t, "http://www.example/api/", cfg.BaseURL)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Second, cfg.RefreshTimeout)
		assert.Equal(t, "keep.db", cfg.DatabasePath)
	})

	t.Run("short -c", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		require.NoError(t, parseJSON(cfg))
		assert.Equal(t, "http://www.example/api/", cfg.BaseURL)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{BaseURL: "http://defaults/", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJSON(cfg))

		assert.Equal(t, "http://defaults/", cfg.BaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Error(t, parseJSON(&Config{}))
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "nope.json")}

		require.Error(t, parseJSON(&Config{}))
	})
}
