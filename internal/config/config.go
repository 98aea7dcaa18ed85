// Package config loads ticktop's TOML configuration.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/prabalesh/ticktop/internal/collector"
	"github.com/prabalesh/ticktop/internal/schedule"
	"github.com/prabalesh/ticktop/internal/series"
)

// Config is the root configuration.
type Config struct {
	// TickRate is the host scheduler's base tick. Widget intervals are
	// expressed in multiples of it.
	TickRate Duration `toml:"tick_rate"`

	// History is the per-series sample capacity.
	History int `toml:"history"`

	// Source selects the stat provider: "psutil" or "procfs".
	Source string `toml:"source"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`

	Widgets WidgetsConfig `toml:"widgets"`
}

type WidgetsConfig struct {
	Mem  WidgetConfig `toml:"mem"`
	CPU  WidgetConfig `toml:"cpu"`
	Disk DiskConfig   `toml:"disk"`
}

type WidgetConfig struct {
	Enabled  bool           `toml:"enabled"`
	Interval schedule.Ratio `toml:"interval"`
}

type DiskConfig struct {
	WidgetConfig
	Mounts []string `toml:"mounts"`
}

// Duration wraps time.Duration so it decodes from strings like "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", string(text))
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		TickRate: Duration{time.Second},
		History:  series.MinCapacity,
		Source:   collector.SourcePsutil,
		LogLevel: "info",
		Widgets: WidgetsConfig{
			Mem: WidgetConfig{Enabled: true, Interval: schedule.Every(1)},
			CPU: WidgetConfig{Enabled: true, Interval: schedule.Every(1)},
			Disk: DiskConfig{
				WidgetConfig: WidgetConfig{Enabled: false, Interval: schedule.Every(5)},
				Mounts:       []string{"/"},
			},
		},
	}
}

// Path returns $XDG_CONFIG_HOME/ticktop/config.toml, falling back to
// ~/.config. It returns "" when no home directory is known.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ticktop", "config.toml")
}

// Load reads path, or returns Default when it does not exist.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML over Default and validates the result.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode toml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TickRate.Duration <= 0 {
		return errors.Errorf("tick_rate must be positive, got %s", c.TickRate.Duration)
	}
	if c.History < series.MinCapacity {
		return errors.Errorf("history must be at least %d, got %d", series.MinCapacity, c.History)
	}
	switch c.Source {
	case collector.SourcePsutil, collector.SourceProcfs:
	default:
		return errors.Errorf("unknown source %q", c.Source)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}

	widgets := map[string]WidgetConfig{
		"mem":  c.Widgets.Mem,
		"cpu":  c.Widgets.CPU,
		"disk": c.Widgets.Disk.WidgetConfig,
	}
	for name, w := range widgets {
		if !w.Enabled {
			continue
		}
		if !w.Interval.Valid() {
			return errors.Errorf("widgets.%s.interval must be a positive ratio", name)
		}
		if w.Interval.TooFast() {
			return errors.Errorf("widgets.%s.interval %s exceeds %d updates per tick", name, w.Interval, schedule.MaxPerTick)
		}
	}
	if c.Widgets.Disk.Enabled && len(c.Widgets.Disk.Mounts) == 0 {
		return errors.New("widgets.disk.mounts must not be empty")
	}
	return nil
}
