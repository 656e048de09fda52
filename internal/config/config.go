// Package config loads the optional sierpinski.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sierpinski/internal/demo"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "sierpinski.yaml"

// Config mirrors sierpinski.yaml. Pointer fields distinguish "unset" from
// zero values.
type Config struct {
	SlowDown *bool         `yaml:"slow_down,omitempty"`
	Delay    time.Duration `yaml:"delay,omitempty"`
	Tick     time.Duration `yaml:"tick,omitempty"`
	Frame    time.Duration `yaml:"frame,omitempty"`
	Theme    string        `yaml:"theme,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	Options demo.Options
	Frame   time.Duration
	Theme   string
}

// DefaultFrame is the animation frame interval.
const DefaultFrame = time.Second / 60

// LoadOptional reads path if present. A missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", c.Delay)
	}
	if c.Tick < 0 {
		return fmt.Errorf("tick must not be negative, got %v", c.Tick)
	}
	if c.Frame < 0 {
		return fmt.Errorf("frame must not be negative, got %v", c.Frame)
	}
	return nil
}

// Resolve applies defaults to unset fields.
func (c *Config) Resolve() Resolved {
	r := Resolved{
		Options: demo.DefaultOptions(),
		Frame:   DefaultFrame,
		Theme:   c.Theme,
	}
	if c.SlowDown != nil {
		r.Options.SlowDown = *c.SlowDown
	}
	if c.Delay > 0 {
		r.Options.Delay = c.Delay
	}
	if c.Tick > 0 {
		r.Options.Tick = c.Tick
	}
	if c.Frame > 0 {
		r.Frame = c.Frame
	}
	return r
}
