package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "img", cfg.InputPath)
	assert.Equal(t, "points.json", cfg.LayoutPath)
	assert.Equal(t, "results.csv", cfg.OutputCSV)
	assert.Equal(t, 2, cfg.Tolerance)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
input: shots
width: 1920
height: 1080
tolerance: 4
strict_games: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "shots", cfg.InputPath)
	assert.Equal(t, "points.json", cfg.LayoutPath)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, 4, cfg.Tolerance)
	assert.True(t, cfg.StrictGames)
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0644))
	assert.Error(t, Default().LoadFile(path))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BRACKETSCAN_LAYOUT", "layout.yaml")
	t.Setenv("BRACKETSCAN_TOLERANCE", " 6 ")
	t.Setenv("BRACKETSCAN_VERBOSE", "true")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "layout.yaml", cfg.LayoutPath)
	assert.Equal(t, 6, cfg.Tolerance)
	assert.True(t, cfg.Verbose)
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv("BRACKETSCAN_WORKERS", "many")
	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BRACKETSCAN_WORKERS")
}

// TestLoadDotEnv reads variables from a .env file and tolerates a missing one
func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BRACKETSCAN_DPI=300\n"), 0644))
	t.Setenv("BRACKETSCAN_DPI", "")
	os.Unsetenv("BRACKETSCAN_DPI")

	require.NoError(t, LoadDotEnv(path))
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 300, cfg.DPI)

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty input", func(c *Config) { c.InputPath = "" }},
		{"empty layout", func(c *Config) { c.LayoutPath = "" }},
		{"negative width", func(c *Config) { c.Width, c.Height = -1, 10 }},
		{"width only", func(c *Config) { c.Width = 1920 }},
		{"tolerance too high", func(c *Config) { c.Tolerance = 256 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"zero dpi", func(c *Config) { c.DPI = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
