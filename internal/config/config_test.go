package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/devconsole/internal/config"
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devconsole.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_lines = 50
toggle_key = "f1"
scroll_rate = 8.5
graph_enabled = true
background = "10,20,30"
tick_interval = "100ms"
log_level = "debug"
recorder_enabled = true
recorder_db = "/path/to/telemetry.db"
`)
	t.Setenv("DEVCONSOLE_CONFIG", path)

	cfg, err := config.Load(config.WithArgs(nil))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, 50, cfg.MaxLines)
	assert.Equal(t, "f1", cfg.ToggleKey)
	assert.InDelta(t, 8.5, cfg.ScrollRate, 1e-9)
	assert.True(t, cfg.GraphEnabled)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel)

	assert.Equal(t, render.Color{R: 10, G: 20, B: 30, A: 255}, cfg.ConsoleConfig().Background)
	assert.InDelta(t, 8.5, cfg.BoardConfig().ScrollRate, 1e-9)

	rec := cfg.RecorderConfig()
	assert.True(t, rec.Enabled)
	assert.Equal(t, "/path/to/telemetry.db", rec.DBPath)
	assert.Equal(t, 64, rec.BatchSize)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEVCONSOLE_CONFIG", "")

	cfg, err := config.Load(config.WithArgs(nil))
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, 20, cfg.MaxLines)
	assert.Equal(t, "|", cfg.ToggleKey)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.False(t, cfg.GraphEnabled)
	assert.False(t, cfg.RecorderEnabled)
	assert.False(t, cfg.GPUEnabled)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)

	cc := cfg.ConsoleConfig()
	assert.Equal(t, render.Color{R: 0, G: 167, B: 255, A: 128}, cc.Background)
	assert.Equal(t, render.Color{R: 200, G: 220, B: 255, A: 255}, cc.FontColor)
	assert.NoError(t, cc.Validate())

	bc := cfg.BoardConfig()
	assert.Equal(t, render.Color{R: 0, G: 128, B: 64, A: 255}, bc.GridColor)
	assert.InDelta(t, 0.25, bc.WidthRatio, 1e-9)
	assert.NoError(t, bc.Validate())
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	path := writeConfig(t, `
This is not a valid TOML file
`)

	_, err := config.Load(config.WithConfigFile(path), config.WithArgs(nil))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
	assert.Contains(t, err.Error(), "Failed to read configuration")
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := config.Load(
		config.WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")),
		config.WithArgs(nil),
	)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
log_level = "invalid"
`)

	_, err := config.Load(config.WithConfigFile(path), config.WithArgs(nil))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"max lines", "max_lines = 0"},
		{"scroll rate", "scroll_rate = -1.0"},
		{"width ratio", "graph_width_ratio = 1.5"},
		{"tick interval", `tick_interval = "0s"`},
		{"toggle key", `toggle_key = ""`},
		{"color", `grid_color = "green"`},
		{"recorder path", "recorder_enabled = true\nrecorder_db = \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := config.Load(config.WithConfigFile(path), config.WithArgs(nil))
			assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "error"
max_lines = 30
`)

	cfg, err := config.Load(
		config.WithConfigFile(path),
		config.WithArgs([]string{"--log-level", "debug", "--graph", "--gpu-index", "1"}),
	)
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel, "Expected LogLevel to be set by flag")
	assert.Equal(t, 30, cfg.MaxLines)
	assert.True(t, cfg.GraphEnabled)
	assert.Equal(t, 1, cfg.GPUIndex)
}

func TestConfigFlag(t *testing.T) {
	path := writeConfig(t, `max_lines = 7`)
	t.Setenv("DEVCONSOLE_CONFIG", "")

	cfg, err := config.Load(config.WithArgs([]string{"--config", path}))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxLines)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `max_lines = 30`)
	t.Setenv("DEVCONSOLE_MAX_LINES", "40")

	cfg, err := config.Load(config.WithConfigFile(path), config.WithArgs(nil))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.MaxLines)
}

func TestUnknownFlag(t *testing.T) {
	_, err := config.Load(config.WithArgs([]string{"--bogus"}))
	assert.True(t, errors.HasCode(err, errors.ErrBindFlags))
}
