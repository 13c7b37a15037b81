package automation

import (
	"context"
	"fmt"
	"io"
	"maps"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/config"
	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/experiment"
)

// ParameterSweep runs Base once per evenly spaced value of Param in
// [Min, Max].
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Count int
}

type SweepResult struct {
	Value   float64
	Final   dynamo.State
	Metrics map[string]float64
	// Err is set when the run diverged or failed; other values still run.
	Err error
}

func (s *ParameterSweep) Values() []float64 {
	if s.Count <= 1 {
		return []float64{s.Min}
	}
	vals := make([]float64, s.Count)
	step := (s.Max - s.Min) / float64(s.Count-1)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

// RunSweep executes the sweep. Setup errors such as an unknown parameter
// abort it; per-value run errors are recorded on the result.
func RunSweep(ctx context.Context, sweep *ParameterSweep, reg *catalog.Registry, w io.Writer) ([]SweepResult, error) {
	vals := sweep.Values()
	results := make([]SweepResult, 0, len(vals))

	for i, v := range vals {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg := *sweep.Base
		cfg.Params = make(map[string]float64, len(sweep.Base.Params)+1)
		maps.Copy(cfg.Params, sweep.Base.Params)
		cfg.Params[sweep.Param] = v

		exp, err := experiment.New(reg, &cfg)
		if err != nil {
			return results, err
		}
		_, m, err := exp.Run(ctx)
		results = append(results, SweepResult{
			Value:   v,
			Final:   exp.Integrator().State(),
			Metrics: m,
			Err:     err,
		})

		fmt.Fprintf(w, "sweep %d/%d: %s=%.4f\n", i+1, len(vals), sweep.Param, v)
	}
	return results, nil
}
