package wander

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds application settings loaded from a TOML file. Zero
// values fall back to the defaults from DefaultConfig.
type Config struct {
	Title     string  `toml:"title"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	MoveSpeed float32 `toml:"move_speed"`
	Smoothing float32 `toml:"camera_smoothing"`
	WorldFile string  `toml:"world_file"`
	FontFile  string  `toml:"font_file"`
	AssetRoot string  `toml:"asset_root"`
	ThemeFile string  `toml:"theme_file"`
	LogLevel  string  `toml:"log_level"`
}

// DefaultConfig returns the settings used when no config file is
// present.
func DefaultConfig() Config {
	return Config{
		Title:     "wander",
		Width:     1280,
		Height:    720,
		MoveSpeed: DefaultMoveSpeed,
		Smoothing: DefaultSmoothing,
		ThemeFile: defaultThemePath(),
		LogLevel:  "info",
	}
}

// LoadConfig reads a TOML config file and merges it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.merge(file)
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.MoveSpeed > 0 {
		c.MoveSpeed = o.MoveSpeed
	}
	if o.Smoothing > 0 {
		c.Smoothing = o.Smoothing
	}
	if o.WorldFile != "" {
		c.WorldFile = o.WorldFile
	}
	if o.FontFile != "" {
		c.FontFile = o.FontFile
	}
	if o.AssetRoot != "" {
		c.AssetRoot = o.AssetRoot
	}
	if o.ThemeFile != "" {
		c.ThemeFile = o.ThemeFile
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

func defaultThemePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wander", "theme")
}
