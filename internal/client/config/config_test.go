package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 60*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Empty(t, c.AccessToken)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		rest        []string
		expectPanic bool
	}{
		{name: "flags then command", args: []string{"-a", "127.0.0.1:9090", "-k", "tok", "-w", "3", "upload", "a.txt", "-public"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", AccessToken: "tok", RequestTimeout: 3 * time.Second},
			rest:     []string{"upload", "a.txt", "-public"}},
		{name: "token command", args: []string{"-s", "secret", "-v", "5", "token", "alice"},
			expected: &Config{SecretKey: "secret", TokenValidityDuration: 5 * time.Minute},
			rest:     []string{"token", "alice"}},
		{name: "config flag is skipped", args: []string{"-c", "cfg.json", "stats"},
			expected: &Config{}, rest: []string{"stats"}},
		{name: "bad int", args: []string{"-w", "abc"}, expectPanic: true},
		{name: "unknown flag", args: []string{"-zz", "stats"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}

			var rest []string
			require.NotPanics(t, func() { rest = parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestLoadConfig_JSONThenFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "ledgerctl.json")
	b, err := json.Marshal(map[string]any{
		"server_endpoint_addr": "ledger:50051",
		"access_token":         "from-file",
		"request_timeout":      "1500ms",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"ledgerctl", "-config", path, "-k", "from-flag", "stats"}
	cfg, rest := LoadConfig(os.Args[1:])

	assert.Equal(t, "ledger:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, "from-flag", cfg.AccessToken)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 60*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, []string{"stats"}, rest)
}
