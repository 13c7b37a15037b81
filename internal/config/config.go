package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/integrators"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 50.0
	DefaultMaxSubSteps = 2000
	DefaultFPS         = 30
	DefaultTrailLength = 1500
	DefaultTheme       = "neon"
)

type Config struct {
	Model       string             `yaml:"model"`
	Integrator  string             `yaml:"integrator"`
	Dt          float64            `yaml:"dt"`
	Duration    float64            `yaml:"duration"`
	MaxSubSteps int                `yaml:"max_sub_steps"`
	FPS         int                `yaml:"fps"`
	TrailLength int                `yaml:"trail_length"`
	Theme       string             `yaml:"theme"`
	InitState   *InitStateConfig   `yaml:"init_state,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty"`
}

// InitStateConfig overrides the family's recommended seed when present.
type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "lorenz",
		Integrator:  "rk4",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		MaxSubSteps: DefaultMaxSubSteps,
		FPS:         DefaultFPS,
		TrailLength: DefaultTrailLength,
		Theme:       DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks names against the built-in catalog and integrator set,
// and rejects non-positive or non-finite numbers.
func (c *Config) Validate() error {
	if _, err := catalog.NewRegistry().IndexOf(c.Model); err != nil {
		return err
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if !finite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrInvalidTimeStep, c.Dt)
	}
	if !finite(c.Duration) || c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if c.MaxSubSteps < 0 {
		return fmt.Errorf("max_sub_steps must be >= 0, got %d", c.MaxSubSteps)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.TrailLength <= 0 {
		return fmt.Errorf("trail_length must be positive, got %d", c.TrailLength)
	}
	if s := c.InitState; s != nil && !dynamo.IsFinite(dynamo.State{s.X, s.Y, s.Z}) {
		return fmt.Errorf("%w: init_state", dynamo.ErrNonFiniteParameter)
	}
	for name, v := range c.Params {
		if !finite(v) {
			return fmt.Errorf("%w: %s=%v", dynamo.ErrNonFiniteParameter, name, v)
		}
	}
	return nil
}

// GetInitState returns the configured seed, or def when none is set.
func (c *Config) GetInitState(def dynamo.State) dynamo.State {
	if c.InitState == nil {
		return def
	}
	return dynamo.State{c.InitState.X, c.InitState.Y, c.InitState.Z}
}

// ApplyParams pushes configured coefficients into m in name order.
func (c *Config) ApplyParams(m dynamo.Configurable) error {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := m.SetParam(name, c.Params[name]); err != nil {
			return err
		}
	}
	return nil
}
