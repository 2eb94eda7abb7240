package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "storefront.db", c.DatabasePath)
	assert.Equal(t, 2*time.Second, c.CheckoutDelay)
	assert.Equal(t, "slog", c.Logger)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Flags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name:     "all flags",
			args:     []string{"-d", "/tmp/shop.db", "-p", "0", "-l", "zap", "-v", "debug"},
			expected: &Config{DatabasePath: "/tmp/shop.db", CheckoutDelay: 0, Logger: "zap", LogLevel: "debug"},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"-x", "1", "-p=5", "--verbose"},
			expected: &Config{DatabasePath: "storefront.db", CheckoutDelay: 5 * time.Second, Logger: "slog", LogLevel: "info"},
		},
		{name: "non-numeric delay", args: []string{"-p", "abc"}, wantErr: true},
		{name: "negative delay", args: []string{"-p=-3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"database_path": "shop.db", "checkout_delay": "750ms", "log_level": "warn"}`)

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	want := &Config{DatabasePath: "shop.db", CheckoutDelay: 750 * time.Millisecond, Logger: "slog", LogLevel: "warn"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_YAMLFileThenFlags(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "database_path: from-file.db\ncheckout_delay: 1000000000\nlogger: zap\n")

	cfg, err := Load([]string{"-config", path, "-d", "from-flag.db"})
	require.NoError(t, err)

	want := &Config{DatabasePath: "from-flag.db", CheckoutDelay: time.Second, Logger: "zap", LogLevel: "info"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := writeFile(t, "bad.json", `{"checkout_delay": true}`)
	_, err = Load([]string{"-c", bad})
	require.Error(t, err)
}
