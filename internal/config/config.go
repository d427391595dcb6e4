package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Display DisplayConfig `toml:"display"`
	Watch   WatchConfig   `toml:"watch"`
	Export  ExportConfig  `toml:"export"`
}

type StorageConfig struct {
	DataDir string `toml:"data_dir"` // defaults to the config directory
	// Schedule is a file used when a command gets no schedule argument.
	Schedule string `toml:"schedule"`
}

type DisplayConfig struct {
	DayStart    int    `toml:"day_start"` // first hour on the grid
	DayEnd      int    `toml:"day_end"`
	Days        string `toml:"days"` // day codes shown as columns, e.g. "MTWRF"
	ColumnWidth int    `toml:"column_width"`
	Timezone    string `toml:"timezone"`
}

type WatchConfig struct {
	IntervalSeconds int  `toml:"interval_seconds"`
	Notify          bool `toml:"notify"`
}

type ExportConfig struct {
	FirstWeek string `toml:"first_week"` // date or phrase, e.g. "next monday"
	Weeks     int    `toml:"weeks"`
}

func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			DayStart:    8,
			DayEnd:      20,
			Days:        "MTWRF",
			ColumnWidth: 16,
		},
		Watch: WatchConfig{
			IntervalSeconds: 60,
			Notify:          true,
		},
		Export: ExportConfig{
			FirstWeek: "next monday",
			Weeks:     15,
		},
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("PLANCAL_CONFIG_DIR"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "plancal"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file on top of the defaults. A missing file is not
// an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Storage.DataDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cfg.Storage.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANCAL_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("PLANCAL_SCHEDULE"); v != "" {
		cfg.Storage.Schedule = v
	}
	if v := os.Getenv("PLANCAL_WATCH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Watch.IntervalSeconds = n
		}
	}
	if v := os.Getenv("PLANCAL_TIMEZONE"); v != "" {
		cfg.Display.Timezone = v
	}
}

func (c *Config) Validate() error {
	d := c.Display
	if d.DayStart < 0 || d.DayEnd > 24 || d.DayStart >= d.DayEnd {
		return fmt.Errorf("display hours %d-%d are not a valid range", d.DayStart, d.DayEnd)
	}
	if d.ColumnWidth < 4 {
		return fmt.Errorf("display column_width must be at least 4, got %d", d.ColumnWidth)
	}
	if c.Watch.IntervalSeconds <= 0 {
		return fmt.Errorf("watch interval_seconds must be positive, got %d", c.Watch.IntervalSeconds)
	}
	if c.Export.Weeks <= 0 {
		return fmt.Errorf("export weeks must be positive, got %d", c.Export.Weeks)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves display.timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Display.Timezone, err)
	}
	return loc, nil
}

func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watch.IntervalSeconds) * time.Second
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// WriteDefault writes the default config to path unless a file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	out, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}

// SaveSchedulePath remembers the default schedule file using a
// read-modify-write so the rest of the file is preserved.
func SaveSchedulePath(schedulePath string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	cfg := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	storage, ok := cfg["storage"].(map[string]any)
	if !ok {
		storage = make(map[string]any)
	}
	storage["schedule"] = schedulePath
	cfg["storage"] = storage

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
