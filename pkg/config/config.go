// Package config loads the engine configuration.
//
// The configuration is optional: LoadOptional returns defaults when neither
// scene.yaml nor scene.toml exists in the directory. Values that are left
// unset are filled by Resolve.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/scene/pkg/units"
)

// DefaultMaxPasses bounds the scheduler passes per drain.
const DefaultMaxPasses = 8

// Config is the root of scene.yaml / scene.toml.
type Config struct {
	Display   DisplayConfig   `yaml:"display" toml:"display"`
	Font      FontConfig      `yaml:"font" toml:"font"`
	Scheduler SchedulerConfig `yaml:"scheduler" toml:"scheduler"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

// DisplayConfig calibrates unit conversion.
type DisplayConfig struct {
	PixelsPerInch float64 `yaml:"pixels_per_inch,omitempty" toml:"pixels_per_inch,omitempty"`
	PixelsPerMM   float64 `yaml:"pixels_per_mm,omitempty" toml:"pixels_per_mm,omitempty"`
	Scale         float64 `yaml:"scale,omitempty" toml:"scale,omitempty"`
}

// FontConfig is the font seeded into every root update context.
type FontConfig struct {
	Family string `yaml:"family,omitempty" toml:"family,omitempty"`
	Size   string `yaml:"size,omitempty" toml:"size,omitempty"`
}

// SchedulerConfig tunes the update scheduler.
type SchedulerConfig struct {
	MaxPasses int `yaml:"max_passes,omitempty" toml:"max_passes,omitempty"`
}

// LogConfig tunes the default diagnostic handler.
type LogConfig struct {
	Verbose bool `yaml:"verbose,omitempty" toml:"verbose,omitempty"`
}

// Default returns a fully resolved default configuration.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Resolve(); err != nil {
		panic(err) // defaults are always valid
	}
	return cfg
}

// Load reads a configuration file. The codec is chosen by extension:
// .yaml and .yml use YAML, .toml uses TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional reads scene.yaml or scene.toml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range []string{"scene.yaml", "scene.yml", "scene.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		return Load(path)
	}
	return Default(), nil
}

// Resolve fills unset values with defaults and validates the rest.
func (c *Config) Resolve() error {
	if c.Display.PixelsPerInch == 0 {
		c.Display.PixelsPerInch = units.DefaultPixelsPerInch
	}
	if c.Display.PixelsPerInch < 0 || c.Display.PixelsPerMM < 0 {
		return fmt.Errorf("display calibration must be positive (pixels_per_inch=%v, pixels_per_mm=%v)",
			c.Display.PixelsPerInch, c.Display.PixelsPerMM)
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = 1
	}
	if c.Display.Scale < 0 {
		return fmt.Errorf("display scale must be positive, got %v", c.Display.Scale)
	}
	if strings.TrimSpace(c.Font.Family) == "" {
		c.Font.Family = "sans"
	}
	if strings.TrimSpace(c.Font.Size) == "" {
		c.Font.Size = "13px"
	}
	if _, err := units.ParseLength(c.Font.Size); err != nil {
		return fmt.Errorf("font size: %w", err)
	}
	if c.Scheduler.MaxPasses == 0 {
		c.Scheduler.MaxPasses = DefaultMaxPasses
	}
	if c.Scheduler.MaxPasses < 0 {
		return fmt.Errorf("scheduler max_passes must be positive, got %d", c.Scheduler.MaxPasses)
	}
	return nil
}

// NewDisplay returns the calibrated display described by the configuration.
func (c *Config) NewDisplay() *units.Display {
	return &units.Display{
		PixelsPerInch: c.Display.PixelsPerInch,
		PixelsPerMM:   c.Display.PixelsPerMM,
	}
}

// FontSize returns the configured root font size.
func (c *Config) FontSize() units.Length {
	l, err := units.ParseLength(c.Font.Size)
	if err != nil {
		return units.Px(13)
	}
	return l
}
