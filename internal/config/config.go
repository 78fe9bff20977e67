// Package config loads the optional gossimu2 configuration file.
//
// Settings live in a TOML file at <user config dir>/gossimu2/config.toml
// and provide defaults for knobs that are also exposed as command-line
// flags; flags always win. A missing file means built-in defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Video holds scoring defaults for the video subcommand.
type Video struct {
	FrameThreads int `toml:"frame_threads"`
}

// Logging selects the stderr log level.
type Logging struct {
	Level string `toml:"level"`
}

// History configures the run history database. An empty Path resolves to
// <user config dir>/gossimu2/history.db; if no user config directory can
// be determined it stays empty and history recording is skipped.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Chart sets the pixel dimensions of exported score graphs.
type Chart struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config holds every file-settable knob.
type Config struct {
	Video   Video   `toml:"video"`
	Logging Logging `toml:"logging"`
	History History `toml:"history"`
	Chart   Chart   `toml:"chart"`
}

const (
	defaultFrameThreads = 3
	defaultLogLevel     = "info"
	defaultChartWidth   = 1500
	defaultChartHeight  = 1000
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Video:   Video{FrameThreads: defaultFrameThreads},
		Logging: Logging{Level: defaultLogLevel},
		History: History{Enabled: true},
		Chart:   Chart{Width: defaultChartWidth, Height: defaultChartHeight},
	}
}

// DefaultPath returns the expected configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "gossimu2", "config.toml"), nil
}

// Load reads the configuration at path, or at the default location when
// path is empty. A missing file at the default location is not an error;
// a missing explicitly requested file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.normalize()
			return cfg, nil
		}
		path = p
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return cfg, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize folds out-of-range values back to defaults and resolves the
// history database location.
func (c *Config) normalize() {
	d := Default()
	if c.Video.FrameThreads < 1 {
		c.Video.FrameThreads = d.Video.FrameThreads
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Chart.Width < 1 {
		c.Chart.Width = d.Chart.Width
	}
	if c.Chart.Height < 1 {
		c.Chart.Height = d.Chart.Height
	}
	if strings.TrimSpace(c.History.Path) == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.History.Path = filepath.Join(dir, "gossimu2", "history.db")
		}
	}
}

// CreateSample writes the embedded sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
