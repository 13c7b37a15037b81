package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "lorenz" {
		t.Errorf("expected model lorenz, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.MaxSubSteps != DefaultMaxSubSteps {
		t.Errorf("expected max sub-steps %d, got %d", DefaultMaxSubSteps, cfg.MaxSubSteps)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"unknown model", func(c *Config) { c.Model = "henon" }, dynamo.ErrUnknownModelKind},
		{"unknown integrator", func(c *Config) { c.Integrator = "rk45" }, nil},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrInvalidTimeStep},
		{"nan dt", func(c *Config) { c.Dt = math.NaN() }, dynamo.ErrInvalidTimeStep},
		{"negative duration", func(c *Config) { c.Duration = -1 }, nil},
		{"negative cap", func(c *Config) { c.MaxSubSteps = -1 }, nil},
		{"zero fps", func(c *Config) { c.FPS = 0 }, nil},
		{"zero trail", func(c *Config) { c.TrailLength = 0 }, nil},
		{"inf seed", func(c *Config) { c.InitState = &InitStateConfig{X: math.Inf(1)} }, dynamo.ErrNonFiniteParameter},
		{"nan param", func(c *Config) { c.Params = map[string]float64{"rho": math.NaN()} }, dynamo.ErrNonFiniteParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaossim.yaml")

	cfg := DefaultConfig()
	cfg.Model = "chua"
	cfg.Dt = 0.005
	cfg.InitState = &InitStateConfig{X: 0.2, Y: 0.1, Z: -0.1}
	cfg.Params = map[string]float64{"alpha": 9}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Model != "chua" || got.Dt != 0.005 {
		t.Errorf("unexpected config: %+v", got)
	}
	if got.InitState == nil || got.InitState.X != 0.2 {
		t.Errorf("init state lost: %+v", got.InitState)
	}
	if got.Params["alpha"] != 9 {
		t.Errorf("expected alpha 9, got %v", got.Params["alpha"])
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("model: rossler\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "rossler" {
		t.Errorf("expected rossler, got %s", cfg.Model)
	}
	if cfg.Dt != DefaultDt || cfg.FPS != DefaultFPS {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("model: [\n"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	os.WriteFile(unknown, []byte("model: henon\n"), 0644)
	if _, err := Load(unknown); !errors.Is(err, dynamo.ErrUnknownModelKind) {
		t.Errorf("expected ErrUnknownModelKind, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetInitState(t *testing.T) {
	def := dynamo.State{0.1, 0, 0}
	cfg := DefaultConfig()

	if got := cfg.GetInitState(def); got != def {
		t.Errorf("expected family default, got %v", got)
	}

	cfg.InitState = &InitStateConfig{X: 1, Y: 2, Z: 3}
	if got := cfg.GetInitState(def); got != (dynamo.State{1, 2, 3}) {
		t.Errorf("expected override, got %v", got)
	}
}

func TestApplyParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]float64{"rho": 99.96, "sigma": 11}

	l := physics.NewLorenz()
	if err := cfg.ApplyParams(l); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p := l.Params(); p.Rho != 99.96 || p.Sigma != 11 {
		t.Errorf("params not applied: %+v", p)
	}

	cfg.Params = map[string]float64{"omega": 1}
	if err := cfg.ApplyParams(l); !errors.Is(err, dynamo.ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lorenz", "periodic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["rho"] != 99.96 {
		t.Errorf("expected rho 99.96, got %f", cfg.Params["rho"])
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("preset should inherit defaults, got fps %d", cfg.FPS)
	}

	cfg.Params["rho"] = 1
	if Presets["lorenz"]["periodic"].Params["rho"] != 99.96 {
		t.Error("GetPreset must not alias the preset table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("lorenz", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "classic") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestPresetsValid(t *testing.T) {
	for model, presets := range Presets {
		for name := range presets {
			cfg := GetPreset(model, name)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("rossler")
	if len(presets) != 3 || presets[0] != "classic" {
		t.Errorf("unexpected presets: %v", presets)
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}
