package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/linkstore/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "linkstore.toml"

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log handler format.
	DefaultLogFormat = "text"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "linkstore"

	// DefaultWatchDebounce is the default delay before a changed file is reloaded.
	DefaultWatchDebounce = 100 * time.Millisecond
)

// Config is the storectl configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is text or json.
	LogFormat string

	// Color enables ANSI colors in diagnostics.
	Color bool

	// MetricsNamespace is the namespace for exported metrics.
	MetricsNamespace string

	// WatchDebounce is how long watch waits for writes to settle.
	WatchDebounce time.Duration

	// configPath stores the path where the config was loaded from.
	configPath string
}

// fileConfig mirrors linkstore.toml. Durations are strings.
type fileConfig struct {
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
	Color            bool   `toml:"color"`
	MetricsNamespace string `toml:"metrics_namespace"`
	WatchDebounce    string `toml:"watch_debounce"`
}

// New returns a configuration with defaults applied.
func New() *Config {
	return &Config{
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		Color:            true,
		MetricsNamespace: DefaultMetricsNamespace,
		WatchDebounce:    DefaultWatchDebounce,
	}
}

// Load loads linkstore.toml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads a configuration file. Keys missing from the file keep their
// defaults.
func LoadFile(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("L010").
				Wrap(err).
				WithDetail("No " + ConfigFileName + " found at " + path)
		}
		return nil, errors.New("L010").
			Wrap(err).
			WithLocationFromError(path, err).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid TOML")
	}

	cfg := New()
	cfg.configPath = path

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(raw.LogFormat))
	}
	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}
	if meta.IsDefined("metrics_namespace") {
		cfg.MetricsNamespace = strings.TrimSpace(raw.MetricsNamespace)
	}
	if meta.IsDefined("watch_debounce") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.WatchDebounce))
		if err != nil {
			return nil, errors.New("L010").
				Wrap(err).
				WithDetail("watch_debounce must be a Go duration such as \"250ms\"")
		}
		cfg.WatchDebounce = d
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New("L010").
			WithDetail("Unknown key " + undecoded[0].String() + " in " + filepath.Base(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the path it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("L010").WithDetail("Config has no path; use SaveTo")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.New("L010").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(fileConfig{
		LogLevel:         c.LogLevel,
		LogFormat:        c.LogFormat,
		Color:            c.Color,
		MetricsNamespace: c.MetricsNamespace,
		WatchDebounce:    c.WatchDebounce.String(),
	})
}

// Path returns the path the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("L010").
			WithDetail("log_level must be one of debug, info, warn, error; got " + c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("L010").
			WithDetail("log_format must be text or json; got " + c.LogFormat)
	}
	if c.MetricsNamespace == "" {
		return errors.New("L010").WithDetail("metrics_namespace must not be empty")
	}
	if c.WatchDebounce < 0 {
		return errors.New("L010").WithDetail("watch_debounce must not be negative")
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

// NewLogger builds the slog logger described by the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch s {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a linkstore.toml exists in the directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot searches for linkstore.toml starting from startDir and
// walking up. It returns "" when no parent holds one.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest linkstore.toml above the working
// directory, or returns defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return New(), nil
	}
	return Load(root)
}
