package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://localhost:8000/api/", "-r", "http://localhost:8000/api/auth/refresh/", "-d", "x.db", "-t", "5", "-l", "debug"},
			expected: &Config{
				BaseURL:        "http://localhost:8000/api/",
				RefreshURL:     "http://localhost:8000/api/auth/refresh/",
				DatabasePath:   "x.db",
				RequestTimeout: 5 * time.Second,
				LogLevel:       "debug",
			},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"cmd", "-x", "1", "-t", "7"},
			expected: &Config{RequestTimeout: 7 * time.Second},
		},
		{name: "bad timeout", args: []string{"cmd", "-t", "abc"}, wantErr: true},
		{name: "zero timeout", args: []string{"cmd", "-t", "0"}, wantErr: true},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{RequestTimeout: time.Second}
			err := parseFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
