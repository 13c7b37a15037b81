// Package automation runs scripted batches of experiments: YAML scenarios
// and one-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/config"
	"github.com/san-kum/chaossim/internal/experiment"
	"github.com/san-kum/chaossim/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Preset, when set, is applied first and the
// remaining fields override it.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Duration   float64            `yaml:"duration"`
	Dt         float64            `yaml:"dt"`
	InitState  []float64          `yaml:"init_state"`
	Params     map[string]float64 `yaml:"params"`
	Save       bool               `yaml:"save"`
}

// StepOutcome reports one finished step.
type StepOutcome struct {
	Model   string
	RunID   string
	Steps   int
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config resolves the step into a validated run config.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.Preset != "" {
		p := config.GetPreset(cfg.Model, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s/%s", cfg.Model, s.Preset)
		}
		cfg = p
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	switch len(s.InitState) {
	case 0:
	case 3:
		cfg.InitState = &config.InitStateConfig{X: s.InitState[0], Y: s.InitState[1], Z: s.InitState[2]}
	default:
		return nil, fmt.Errorf("init_state needs 3 values, got %d", len(s.InitState))
	}
	if len(s.Params) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(s.Params))
		}
		for k, v := range s.Params {
			cfg.Params[k] = v
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order, saving the ones marked save to
// st. It stops at the first failing step. Progress goes to w.
func RunScenario(ctx context.Context, scenario *Scenario, reg *catalog.Registry, st *storage.Store, w io.Writer) ([]StepOutcome, error) {
	outcomes := make([]StepOutcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Model)

		exp, err := experiment.New(reg, cfg)
		if err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, m, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := StepOutcome{Model: cfg.Model, Steps: result.StepsTaken, Metrics: m}
		if step.Save && st != nil {
			if out.RunID, err = st.Save(exp.Metadata(m), result); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}
