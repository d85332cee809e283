package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("listen: \":9090\"\nwidth: 1024\nheight: 768\npalette: hsv\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Listen != ":9090" || cfg.Width != 1024 || cfg.Height != 768 || cfg.Palette != "hsv" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.Zoom != 250 || cfg.MaxIter != 100 || cfg.Epsilon != 1e-4 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen", func(c *Config) { c.Listen = "" }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative zoom", func(c *Config) { c.Zoom = -1 }},
		{"zero max_iter", func(c *Config) { c.MaxIter = 0 }},
		{"zero max_orbit", func(c *Config) { c.MaxOrbit = 0 }},
		{"bad formula", func(c *Config) { c.Formula = 99 }},
		{"bad palette", func(c *Config) { c.Palette = "sepia" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
