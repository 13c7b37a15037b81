package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/chaossim/internal/dynamo"
)

// Result is the trajectory sampled at every fixed step of a headless run.
type Result struct {
	States     []dynamo.State
	Times      []float64
	StepsTaken int
}

// Run steps in until duration seconds of simulated time have elapsed,
// recording every state. It stops early with a *dynamo.StepError if the
// state stops being finite.
func Run(ctx context.Context, in *Integrator, duration float64) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	steps := int(duration/in.TimeStep() + 0.5)
	result := &Result{
		States: make([]dynamo.State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}
	result.States = append(result.States, in.State())
	result.Times = append(result.Times, in.Time())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		in.Step()
		x := in.State()
		if !dynamo.IsFinite(x) {
			return result, &dynamo.StepError{Step: in.Steps(), Time: in.Time(), State: x, Wrapped: dynamo.ErrDiverged}
		}

		result.States = append(result.States, x)
		result.Times = append(result.Times, in.Time())
		result.StepsTaken++
	}

	return result, nil
}
