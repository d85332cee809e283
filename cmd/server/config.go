package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	celtic "github.com/marben/celtic_explorer"
)

// Config holds the full server configuration.
type Config struct {
	Listen    string  `yaml:"listen"`
	StaticDir string  `yaml:"static_dir"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Zoom      float64 `yaml:"zoom"`
	MaxIter   int     `yaml:"max_iter"`
	MaxOrbit  int     `yaml:"max_orbit"`
	Epsilon   float64 `yaml:"epsilon"`
	Workers   int     `yaml:"workers"` // <= 0 means GOMAXPROCS
	Formula   int     `yaml:"formula"`
	Palette   string  `yaml:"palette"` // gray | hsv
}

// DefaultConfig returns the reference interactive setup.
func DefaultConfig() *Config {
	return &Config{
		Listen:    ":8080",
		StaticDir: "./static",
		Width:     800,
		Height:    600,
		Zoom:      250,
		MaxIter:   celtic.DefaultMaxIter,
		MaxOrbit:  celtic.DefaultMaxOrbit,
		Epsilon:   celtic.DefaultEpsilon,
		Formula:   int(celtic.FormulaCeltic),
		Palette:   string(celtic.PaletteGray),
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig
// merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be > 0")
	}
	if c.Zoom <= 0 {
		return fmt.Errorf("zoom must be > 0")
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("max_iter must be > 0")
	}
	if c.MaxOrbit <= 0 {
		return fmt.Errorf("max_orbit must be > 0")
	}
	if !celtic.Formula(c.Formula).Valid() {
		return fmt.Errorf("formula must be in [0, %d)", celtic.FormulaCount)
	}
	switch celtic.Palette(c.Palette) {
	case celtic.PaletteGray, celtic.PaletteHSV:
	default:
		return fmt.Errorf("unsupported palette %q (use gray or hsv)", c.Palette)
	}
	return nil
}

// View builds the configured starting viewport.
func (c *Config) View() celtic.Viewport {
	return celtic.Viewport{Width: c.Width, Height: c.Height, Zoom: c.Zoom}
}
