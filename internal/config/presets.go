package config

import "sort"

var Presets = map[string]map[string]*Config{
	"lorenz": {
		"classic": {
			Model: "lorenz", Integrator: "rk4", Dt: 0.01, Duration: 50.0,
			Params: map[string]float64{"sigma": 10, "rho": 28, "beta": 8.0 / 3},
		},
		"periodic": {
			Model: "lorenz", Integrator: "rk4", Dt: 0.005, Duration: 50.0,
			Params: map[string]float64{"sigma": 10, "rho": 99.96, "beta": 8.0 / 3},
		},
		"transient": {
			Model: "lorenz", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Params:    map[string]float64{"sigma": 10, "rho": 21, "beta": 8.0 / 3},
			InitState: &InitStateConfig{X: 1, Y: 1, Z: 1},
		},
	},
	"rossler": {
		"classic": {
			Model: "rossler", Integrator: "rk4", Dt: 0.02, Duration: 200.0,
			Params: map[string]float64{"a": 0.2, "b": 0.2, "c": 5.7},
		},
		"period1": {
			Model: "rossler", Integrator: "rk4", Dt: 0.02, Duration: 200.0,
			Params: map[string]float64{"a": 0.2, "b": 0.2, "c": 2.5},
		},
		"period2": {
			Model: "rossler", Integrator: "rk4", Dt: 0.02, Duration: 200.0,
			Params: map[string]float64{"a": 0.2, "b": 0.2, "c": 3.5},
		},
	},
	"chen": {
		"classic": {
			Model: "chen", Integrator: "rk4", Dt: 0.002, Duration: 30.0,
			Params: map[string]float64{"a": 35, "b": 3, "c": 28},
		},
	},
	"chua": {
		"classic": {
			Model: "chua", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Params: map[string]float64{"alpha": 15.6, "beta": 28, "m0": -1.143, "m1": -0.714},
		},
	},
	"double_scroll": {
		"classic": {
			Model: "double_scroll", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Params: map[string]float64{"a": 0.7, "b": 0.7, "c": 7},
		},
	},
}

// GetPreset returns a complete config: preset fields over the defaults.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Model = p.Model
	cfg.Integrator = p.Integrator
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	if p.InitState != nil {
		s := *p.InitState
		cfg.InitState = &s
	}
	cfg.Params = make(map[string]float64, len(p.Params))
	for k, v := range p.Params {
		cfg.Params[k] = v
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
