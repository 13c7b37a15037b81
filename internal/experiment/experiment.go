// Package experiment runs headless trajectories described by a config:
// single recorded runs, integrator comparisons and throughput benchmarks.
package experiment

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/config"
	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/integrators"
	"github.com/san-kum/chaossim/internal/metrics"
	"github.com/san-kum/chaossim/internal/sim"
	"github.com/san-kum/chaossim/internal/storage"
)

// StabilityThreshold bounds every coordinate for the stability metric.
const StabilityThreshold = 1000.0

type Experiment struct {
	cfg     *config.Config
	model   dynamo.Attractor
	integ   *sim.Integrator
	metrics []metrics.Metric
}

// New builds the model and integrator named by cfg, with cfg's parameters
// and seed applied.
func New(reg *catalog.Registry, cfg *config.Config) (*Experiment, error) {
	return newWithIntegrator(reg, cfg, cfg.Integrator)
}

func newWithIntegrator(reg *catalog.Registry, cfg *config.Config, integName string) (*Experiment, error) {
	model, _, err := reg.CreateByName(cfg.Model)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyParams(model); err != nil {
		return nil, err
	}
	stepper, err := integrators.Get(integName)
	if err != nil {
		return nil, err
	}
	integ, err := sim.NewIntegrator(model, stepper, cfg.GetInitState(model.DefaultState()), cfg.Dt)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:   cfg,
		model: model,
		integ: integ,
		metrics: []metrics.Metric{
			metrics.NewMeanSpeed(model),
			metrics.NewMaxSpeed(model),
			metrics.NewStability(StabilityThreshold),
		},
	}
	for _, m := range e.metrics {
		integ.AddObserver(m)
	}
	return e, nil
}

func (e *Experiment) Model() dynamo.Attractor      { return e.model }
func (e *Experiment) Integrator() *sim.Integrator { return e.integ }

// Run integrates for the configured duration. The returned map holds the
// observer metrics and the per-axis extent of the trajectory.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, map[string]float64, error) {
	for _, m := range e.metrics {
		m.Reset()
	}
	result, err := sim.Run(ctx, e.integ, e.cfg.Duration)
	if err != nil {
		return result, nil, err
	}
	out := metrics.Collect(e.metrics...)
	maps.Copy(out, metrics.Extent(result.States))
	return result, out, nil
}

// Metadata describes this experiment for storage.
func (e *Experiment) Metadata(m map[string]float64) *storage.RunMetadata {
	return &storage.RunMetadata{
		Model:      e.model.Kind().String(),
		Name:       e.model.Name(),
		Dt:         e.cfg.Dt,
		Duration:   e.cfg.Duration,
		Integrator: e.integ.Stepper().Name(),
		InitState:  e.integ.InitialState(),
		Params:     e.model.GetParams(),
		Metrics:    m,
	}
}

// Comparison is one integrator's outcome on a shared configuration.
type Comparison struct {
	Integrator string
	Final      dynamo.State
	// Deviation is the distance between this integrator's final state and
	// the first one's.
	Deviation float64
	Steps     int
}

// Compare runs the same configuration under each integrator concurrently.
// The first integrator is the reference for Deviation.
func Compare(ctx context.Context, reg *catalog.Registry, cfg *config.Config, names []string) ([]Comparison, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no integrators to compare")
	}

	members := make([]*sim.Integrator, len(names))
	for i, name := range names {
		e, err := newWithIntegrator(reg, cfg, name)
		if err != nil {
			return nil, err
		}
		members[i] = e.integ
	}

	_, err := sim.RunEnsemble(ctx, members, cfg.Duration)
	out := make([]Comparison, len(names))
	for i, name := range names {
		out[i] = Comparison{Integrator: name, Final: members[i].State(), Steps: members[i].Steps()}
	}
	for i := range out {
		out[i].Deviation = out[i].Final.Sub(out[0].Final).Len()
	}
	return out, err
}

// BenchResult is throughput for one step size.
type BenchResult struct {
	Dt          float64
	Steps       int
	Elapsed     time.Duration
	StepsPerSec float64
}

// Bench times cfg at each step size for cfg.Duration simulated seconds.
func Bench(ctx context.Context, reg *catalog.Registry, cfg *config.Config, dts []float64) ([]BenchResult, error) {
	out := make([]BenchResult, 0, len(dts))
	for _, dt := range dts {
		c := *cfg
		c.Dt = dt
		e, err := New(reg, &c)
		if err != nil {
			return out, err
		}

		start := time.Now()
		result, err := sim.Run(ctx, e.integ, c.Duration)
		elapsed := time.Since(start)
		if err != nil {
			return out, err
		}

		out = append(out, BenchResult{
			Dt:          dt,
			Steps:       result.StepsTaken,
			Elapsed:     elapsed,
			StepsPerSec: float64(result.StepsTaken) / elapsed.Seconds(),
		})
	}
	return out, nil
}
