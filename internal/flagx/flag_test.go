package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		known []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-a", "https://api.example/", "-d", "x.db"},
			known: []string{"-a"},
			want:  []string{"-a", "https://api.example/"},
		},
		{
			name:  "equals form",
			args:  []string{"--config=alt.json", "-a", "x"},
			known: []string{"-c", "--config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "order preserved",
			args:  []string{"-t", "5", "-x", "1", "-a", "u"},
			known: []string{"-a", "-t"},
			want:  []string{"-t", "5", "-a", "u"},
		},
		{
			name:  "unknown and positional ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			known: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-c"},
			known: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "flag followed by another flag",
			args:  []string{"-c", "-l", "debug"},
			known: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "nil args",
			args:  nil,
			known: []string{"-c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.known))
		})
	}
}

func TestConfigPath(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"bin", "-c", "a.json"}, "a.json"},
		{"long", []string{"bin", "-config", "b.json", "-a", "x"}, "b.json"},
		{"equals", []string{"bin", "-config=c.json"}, "c.json"},
		{"absent", []string{"bin", "-a", "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigPath())
		})
	}
}
