// Package config loads the devconsole settings from defaults, an optional
// TOML file, DEVCONSOLE_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/devconsole/internal/console"
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/recorder"
	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = LogLevelInfo
	DefaultEnvPrefix = "DEVCONSOLE"
	configName       = "devconsole"
	configType       = "toml"
)

type Config struct {
	Margin       float64 `mapstructure:"margin"`
	FontHeight   float64 `mapstructure:"font_height"`
	Background   string  `mapstructure:"background"`
	FontColor    string  `mapstructure:"font_color"`
	MaxLines     int     `mapstructure:"max_lines"`
	HistoryLimit int     `mapstructure:"history_limit"`
	ToggleKey    string  `mapstructure:"toggle_key"`

	ScrollRate      float64 `mapstructure:"scroll_rate"`
	GraphEnabled    bool    `mapstructure:"graph_enabled"`
	GraphHeight     float64 `mapstructure:"graph_height"`
	GraphWidthRatio float64 `mapstructure:"graph_width_ratio"`
	GridStep        float64 `mapstructure:"grid_step"`
	GridColor       string  `mapstructure:"grid_color"`

	TickInterval time.Duration `mapstructure:"tick_interval"`
	LogLevel     LogLevel      `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
	PIDFile      string        `mapstructure:"pid_file"`

	RecorderEnabled bool   `mapstructure:"recorder_enabled"`
	RecorderDB      string `mapstructure:"recorder_db"`
	RecorderBatch   int    `mapstructure:"recorder_batch"`

	GPUEnabled bool `mapstructure:"gpu_enabled"`
	GPUIndex   int  `mapstructure:"gpu_index"`

	// Source is the config file that was read, empty when none was.
	Source string `mapstructure:"-"`

	background render.Color
	fontColor  render.Color
	gridColor  render.Color
}

func defaults() map[string]any {
	tmp := os.TempDir()
	return map[string]any{
		"margin":            1.0,
		"font_height":       1.0,
		"background":        "0,167,255,128",
		"font_color":        "200,220,255,255",
		"max_lines":         20,
		"history_limit":     0,
		"toggle_key":        "|",
		"scroll_rate":       4.0,
		"graph_enabled":     false,
		"graph_height":      10.0,
		"graph_width_ratio": 0.25,
		"grid_step":         2.0,
		"grid_color":        "0,128,64,255",
		"tick_interval":     50 * time.Millisecond,
		"log_level":         string(DefaultLogLevel),
		"log_file":          filepath.Join(tmp, "devconsole.log"),
		"pid_file":          filepath.Join(tmp, "devconsole.pid"),
		"recorder_enabled":  false,
		"recorder_db":       filepath.Join(tmp, "devconsole", "telemetry.db"),
		"recorder_batch":    64,
		"gpu_enabled":       false,
		"gpu_index":         0,
	}
}

// flagBinding maps a command line flag onto a config key.
type flagBinding struct {
	flag  string
	key   string
	usage string
}

var flagBindings = []flagBinding{
	{"log-level", "log_level", "Log level (debug, info, warning, error)"},
	{"log-file", "log_file", "Log file path"},
	{"max-lines", "max_lines", "Scrollback capacity"},
	{"toggle-key", "toggle_key", "Key that shows and hides the console"},
	{"graph", "graph_enabled", "Start with the telemetry graph enabled"},
	{"tick-interval", "tick_interval", "Host update interval"},
	{"record", "recorder_enabled", "Record telemetry samples to SQLite"},
	{"record-db", "recorder_db", "Telemetry database path"},
	{"gpu", "gpu_enabled", "Add NVIDIA GPU sensors via NVML"},
	{"gpu-index", "gpu_index", "NVML device index"},
}

func newFlagSet(d map[string]any) *pflag.FlagSet {
	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.String("config", "", "Configuration file path")

	for _, b := range flagBindings {
		switch v := d[b.key].(type) {
		case string:
			fs.String(b.flag, v, b.usage)
		case int:
			fs.Int(b.flag, v, b.usage)
		case bool:
			fs.Bool(b.flag, v, b.usage)
		case time.Duration:
			fs.Duration(b.flag, v, b.usage)
		}
	}

	return fs
}

// Load reads and validates the configuration.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}
	if !o.argsSet {
		o.args = os.Args[1:]
	}

	v := viper.New()
	d := defaults()
	for key, value := range d {
		v.SetDefault(key, value)
	}

	fs := newFlagSet(d)
	if err := fs.Parse(o.args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}
	for _, b := range flagBindings {
		if err := v.BindPFlag(b.key, fs.Lookup(b.flag)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(o.envPrefix)
	v.AutomaticEnv()

	path := o.configPath
	if path == "" {
		path, _ = fs.GetString("config")
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	errFactory := errors.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configName))
	}
	v.AddConfigPath("/etc/" + configName)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	return nil
}

// Validate checks every field and resolves the color strings. Load calls
// it; callers building a Config by hand must call it before the
// converters.
func (c *Config) Validate() error {
	errFactory := errors.New()

	invalid := func(field string, value any) error {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value any
		}{field, value})
	}

	if !c.LogLevel.IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	switch {
	case c.MaxLines < 1:
		return invalid("max_lines", c.MaxLines)
	case c.HistoryLimit < 0:
		return invalid("history_limit", c.HistoryLimit)
	case c.FontHeight <= 0:
		return invalid("font_height", c.FontHeight)
	case c.Margin < 0:
		return invalid("margin", c.Margin)
	case c.ScrollRate <= 0:
		return invalid("scroll_rate", c.ScrollRate)
	case c.GraphHeight <= 0:
		return invalid("graph_height", c.GraphHeight)
	case c.GraphWidthRatio <= 0 || c.GraphWidthRatio > 1:
		return invalid("graph_width_ratio", c.GraphWidthRatio)
	case c.GridStep <= 0:
		return invalid("grid_step", c.GridStep)
	case c.TickInterval <= 0:
		return invalid("tick_interval", c.TickInterval)
	case c.ToggleKey == "":
		return invalid("toggle_key", c.ToggleKey)
	case c.RecorderEnabled && c.RecorderDB == "":
		return invalid("recorder_db", c.RecorderDB)
	case c.RecorderEnabled && c.RecorderBatch < 1:
		return invalid("recorder_batch", c.RecorderBatch)
	case c.GPUIndex < 0:
		return invalid("gpu_index", c.GPUIndex)
	}

	colors := []struct {
		field string
		value string
		dst   *render.Color
	}{
		{"background", c.Background, &c.background},
		{"font_color", c.FontColor, &c.fontColor},
		{"grid_color", c.GridColor, &c.gridColor},
	}
	for _, col := range colors {
		parsed, err := render.ParseColor(col.value)
		if err != nil {
			return errFactory.Wrap(errors.ErrInvalidConfig, err).WithData(col.field)
		}
		*col.dst = parsed
	}

	return nil
}

func (c *Config) ConsoleConfig() console.Config {
	return console.Config{
		Margin:       c.Margin,
		FontHeight:   c.FontHeight,
		Background:   c.background,
		FontColor:    c.fontColor,
		MaxLines:     c.MaxLines,
		HistoryLimit: c.HistoryLimit,
	}
}

func (c *Config) BoardConfig() telemetry.Config {
	return telemetry.Config{
		ScrollRate:  c.ScrollRate,
		Margin:      c.Margin,
		FontHeight:  c.FontHeight,
		GraphHeight: c.GraphHeight,
		WidthRatio:  c.GraphWidthRatio,
		GridStep:    c.GridStep,
		GridColor:   c.gridColor,
	}
}

func (c *Config) RecorderConfig() recorder.Config {
	return recorder.Config{
		Enabled:   c.RecorderEnabled,
		DBPath:    c.RecorderDB,
		BatchSize: c.RecorderBatch,
	}
}
