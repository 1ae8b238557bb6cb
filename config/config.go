// Package config loads the lifeforms scene configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Force accumulation schemes accepted in simulation.scheme.
const (
	SchemeSingle      = "single"
	SchemeCompounding = "compounding"
)

// Config is the full scene configuration. Fields missing from a file keep
// the values from Default.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Lifeforms  LifeformsConfig  `yaml:"lifeforms"`
	Lifetime   LifetimeConfig   `yaml:"lifetime"`
	Inspector  InspectorConfig  `yaml:"inspector"`
	// Seed for lifeform placement; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	ClearColor RGB    `yaml:"clear_color"`
}

type SimulationConfig struct {
	// G is the attraction constant of the pairwise force.
	G        float64 `yaml:"g"`
	Scheme   string  `yaml:"scheme"`
	TickRate int     `yaml:"tick_rate"`
}

type LifeformsConfig struct {
	Count        int     `yaml:"count"`
	Radius       float64 `yaml:"radius"`
	Fill         RGB     `yaml:"fill"`
	Outline      RGB     `yaml:"outline"`
	OutlineWidth float64 `yaml:"outline_width"`
}

// LifetimeConfig gives every lifeform an expiry timer when Seconds > 0.
type LifetimeConfig struct {
	Seconds float64 `yaml:"seconds"`
}

type InspectorConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RGB is a colour with channels in [0, 1].
type RGB [3]float64

// RGBA converts the colour to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c[0] * 255)),
		G: uint8(math.Round(c[1] * 255)),
		B: uint8(math.Round(c[2] * 255)),
		A: 255,
	}
}

// Default returns the built-in scene: a 1280x720 window with two cyan
// lifeforms and no expiry.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "lifeforms",
			Resizable:  false,
			ClearColor: RGB{0.2, 0.2, 0.2},
		},
		Simulation: SimulationConfig{
			G:        1.0,
			Scheme:   SchemeSingle,
			TickRate: 60,
		},
		Lifeforms: LifeformsConfig{
			Count:        2,
			Radius:       10,
			Fill:         RGB{0, 1, 1},
			Outline:      RGB{0, 0, 0},
			OutlineWidth: 1,
		},
		Inspector: InspectorConfig{Enabled: true},
	}
}

// Load reads the YAML file at path on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if math.IsNaN(c.Simulation.G) || math.IsInf(c.Simulation.G, 0) {
		return fmt.Errorf("simulation.g must be finite, got %v", c.Simulation.G)
	}
	switch c.Simulation.Scheme {
	case SchemeSingle, SchemeCompounding:
	default:
		return fmt.Errorf("simulation.scheme must be %q or %q, got %q", SchemeSingle, SchemeCompounding, c.Simulation.Scheme)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %d", c.Simulation.TickRate)
	}
	if c.Lifeforms.Count < 0 {
		return fmt.Errorf("lifeforms.count cannot be negative, got %d", c.Lifeforms.Count)
	}
	if c.Lifeforms.Radius <= 0 {
		return fmt.Errorf("lifeforms.radius must be positive, got %v", c.Lifeforms.Radius)
	}
	if c.Lifeforms.OutlineWidth < 0 {
		return fmt.Errorf("lifeforms.outline_width cannot be negative, got %v", c.Lifeforms.OutlineWidth)
	}
	if c.Lifetime.Seconds < 0 {
		return fmt.Errorf("lifetime.seconds cannot be negative, got %v", c.Lifetime.Seconds)
	}
	for name, rgb := range map[string]RGB{
		"window.clear_color": c.Window.ClearColor,
		"lifeforms.fill":     c.Lifeforms.Fill,
		"lifeforms.outline":  c.Lifeforms.Outline,
	} {
		for _, ch := range rgb {
			if ch < 0 || ch > 1 {
				return fmt.Errorf("%s channels must be within [0, 1], got %v", name, rgb)
			}
		}
	}
	return nil
}
