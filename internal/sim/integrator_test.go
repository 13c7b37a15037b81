package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/integrators"
	"github.com/san-kum/chaossim/internal/physics"
)

func newLorenzIntegrator(t *testing.T) *Integrator {
	t.Helper()
	l := physics.NewLorenz()
	in, err := NewIntegrator(l, integrators.NewRK4(), l.DefaultState(), DefaultTimeStep)
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	return in
}

func TestNewIntegratorInvalidStep(t *testing.T) {
	for _, h := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
		_, err := NewIntegrator(physics.NewLorenz(), nil, dynamo.State{}, h)
		if !errors.Is(err, dynamo.ErrInvalidTimeStep) {
			t.Errorf("step %v: expected ErrInvalidTimeStep, got %v", h, err)
		}
	}
}

func TestNewIntegratorDefaultsToRK4(t *testing.T) {
	in, err := NewIntegrator(physics.NewLorenz(), nil, dynamo.State{0.1, 0, 0}, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if in.Stepper().Name() != "rk4" {
		t.Errorf("default stepper = %s, want rk4", in.Stepper().Name())
	}
}

func TestAdvanceInvalidDelta(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"negative", -1.0},
		{"zero", 0},
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newLorenzIntegrator(t)
			in.Advance(0.125)
			state, residual, steps := in.State(), in.Residual(), in.Steps()

			rep := in.Advance(tt.dt)

			if rep.Steps != 0 || rep.Dropped != 0 {
				t.Errorf("report = %+v, want zero", rep)
			}
			if in.State() != state {
				t.Errorf("state changed: %v -> %v", state, in.State())
			}
			if in.Residual() != residual {
				t.Errorf("residual changed: %v -> %v", residual, in.Residual())
			}
			if in.Steps() != steps {
				t.Errorf("steps changed: %d -> %d", steps, in.Steps())
			}
			if ValidateDelta(tt.dt) == nil {
				t.Error("ValidateDelta accepted invalid delta")
			}
		})
	}
}

func TestValidateDelta(t *testing.T) {
	if err := ValidateDelta(1.0 / 60); err != nil {
		t.Errorf("ValidateDelta(1/60) = %v", err)
	}
	if err := ValidateDelta(-1); !errors.Is(err, dynamo.ErrInvalidTimeDelta) {
		t.Errorf("expected ErrInvalidTimeDelta, got %v", err)
	}
}

func TestResidualInvariant(t *testing.T) {
	in := newLorenzIntegrator(t)
	deltas := []float64{0.0167, 0.033, 0.005, 0.25, 0.0001, 0.01, 0.02, 1.0 / 60, 0.0999, 0.5}

	for i, dt := range deltas {
		in.Advance(dt)
		if r := in.Residual(); r < 0 || r >= in.TimeStep() {
			t.Fatalf("call %d: residual %v outside [0, %v)", i, r, in.TimeStep())
		}
	}
}

func TestAdvanceStepCount(t *testing.T) {
	in := newLorenzIntegrator(t)

	if rep := in.Advance(0.005); rep.Steps != 0 {
		t.Errorf("sub-step delta took %d steps", rep.Steps)
	}
	if rep := in.Advance(0.005); rep.Steps != 1 {
		t.Errorf("accumulated delta took %d steps, want 1", rep.Steps)
	}
	if rep := in.Advance(0.035); rep.Steps != 3 {
		t.Errorf("0.035 took %d steps, want 3", rep.Steps)
	}
}

func TestFixedStepEquivalence(t *testing.T) {
	a := newLorenzIntegrator(t)
	b := newLorenzIntegrator(t)
	h := a.TimeStep()

	a.Advance(2 * h)
	b.Advance(h)
	b.Advance(h)

	if a.Steps() != 2 || b.Steps() != 2 {
		t.Fatalf("steps: %d vs %d, want 2", a.Steps(), b.Steps())
	}
	if !a.State().ApproxEqualThreshold(b.State(), 1e-12) {
		t.Errorf("states differ: %v vs %v", a.State(), b.State())
	}
}

func TestDeterminism(t *testing.T) {
	deltas := []float64{0.016, 0.017, 0.016, 0.05, 0.001, 0.033}
	run := func() []dynamo.State {
		in := newLorenzIntegrator(t)
		var out []dynamo.State
		for i := 0; i < 50; i++ {
			for _, dt := range deltas {
				in.Advance(dt)
				out = append(out, in.State())
			}
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	in := newLorenzIntegrator(t)
	in.Advance(1.234)

	in.Reset()
	first := in.State()
	in.Reset()

	if in.State() != first {
		t.Errorf("second reset moved state: %v -> %v", first, in.State())
	}
	if in.State() != in.InitialState() {
		t.Errorf("state %v != initial %v after reset", in.State(), in.InitialState())
	}
	if in.Residual() != 0 || in.Time() != 0 || in.Steps() != 0 {
		t.Errorf("reset left residual=%v time=%v steps=%d", in.Residual(), in.Time(), in.Steps())
	}
}

func TestResetKeepsParameters(t *testing.T) {
	l := physics.NewLorenz()
	in, _ := NewIntegrator(l, nil, l.DefaultState(), 0.01)
	if err := l.SetParam("rho", 99.96); err != nil {
		t.Fatal(err)
	}
	in.Advance(0.5)
	in.Reset()
	if l.Params().Rho != 99.96 {
		t.Errorf("reset touched parameters: rho=%v", l.Params().Rho)
	}
}

func TestSetInitialStateOverwritesCurrent(t *testing.T) {
	in := newLorenzIntegrator(t)
	in.Advance(0.5)

	seed := dynamo.State{1, 1, 1}
	in.SetInitialState(seed)

	if in.State() != seed {
		t.Errorf("current state = %v, want %v", in.State(), seed)
	}
	if in.InitialState() != seed {
		t.Errorf("initial state = %v, want %v", in.InitialState(), seed)
	}

	in.Advance(0.3)
	in.Reset()
	if in.State() != seed {
		t.Errorf("reset returned to %v, want %v", in.State(), seed)
	}
}

func TestSetTimeStep(t *testing.T) {
	in := newLorenzIntegrator(t)

	for _, h := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := in.SetTimeStep(h); !errors.Is(err, dynamo.ErrInvalidTimeStep) {
			t.Errorf("SetTimeStep(%v) = %v, want ErrInvalidTimeStep", h, err)
		}
	}
	if in.TimeStep() != DefaultTimeStep {
		t.Errorf("rejected step leaked: %v", in.TimeStep())
	}

	if err := in.SetTimeStep(0.005); err != nil {
		t.Fatal(err)
	}
	if rep := in.Advance(0.0201); rep.Steps != 4 {
		t.Errorf("0.0201 with step 0.005 took %d steps, want 4", rep.Steps)
	}
}

func TestMaxSubSteps(t *testing.T) {
	in := newLorenzIntegrator(t)
	in.SetMaxSubSteps(5)

	rep := in.Advance(1.0)

	if rep.Steps != 5 {
		t.Errorf("steps = %d, want 5", rep.Steps)
	}
	if rep.Dropped < 94 || rep.Dropped > 95 {
		t.Errorf("dropped = %d, want ~95", rep.Dropped)
	}
	if r := in.Residual(); r < 0 || r >= in.TimeStep() {
		t.Errorf("residual %v outside [0, %v)", r, in.TimeStep())
	}

	in.SetMaxSubSteps(-3)
	if in.MaxSubSteps() != 0 {
		t.Errorf("negative cap stored as %d", in.MaxSubSteps())
	}
}

func TestMaxSubStepsHugeDelta(t *testing.T) {
	in := newLorenzIntegrator(t)
	in.SetMaxSubSteps(1)

	rep := in.Advance(1e300)

	if rep.Steps != 1 {
		t.Errorf("steps = %d, want 1", rep.Steps)
	}
	if rep.Dropped != math.MaxInt {
		t.Errorf("dropped = %d, want saturation at %d", rep.Dropped, math.MaxInt)
	}
	if r := in.Residual(); r < 0 || r >= in.TimeStep() {
		t.Errorf("residual %v outside [0, %v)", r, in.TimeStep())
	}
	if !dynamo.IsFinite(in.State()) {
		t.Errorf("state diverged: %v", in.State())
	}
}

func TestWholeSteps(t *testing.T) {
	tests := []struct {
		r, h float64
		want int
	}{
		{0.0, 0.01, 0},
		{0.5, 0.25, 2},
		{0.74, 0.25, 2},
		{1e300, 0.01, math.MaxInt},
		{math.Exp2(63), 1, math.MaxInt},
		{1e6, 1, 1000000},
	}

	for _, tt := range tests {
		if got := wholeSteps(tt.r, tt.h); got != tt.want {
			t.Errorf("wholeSteps(%v, %v) = %d, want %d", tt.r, tt.h, got, tt.want)
		}
	}
}

func TestUnboundedByDefault(t *testing.T) {
	in := newLorenzIntegrator(t)
	rep := in.Advance(5.0)
	if rep.Dropped != 0 || rep.Steps < 499 {
		t.Errorf("report = %+v, want ~500 steps and nothing dropped", rep)
	}
}

func TestObserversSeeEveryStep(t *testing.T) {
	in := newLorenzIntegrator(t)
	var seen []float64
	in.AddObserver(dynamo.ObserverFunc(func(x dynamo.State, tm float64) {
		seen = append(seen, tm)
	}))

	rep := in.Advance(0.1)

	if len(seen) != rep.Steps {
		t.Fatalf("observer saw %d steps, report says %d", len(seen), rep.Steps)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Errorf("observer times not increasing at %d: %v", i, seen)
		}
	}
}

func TestSetStepper(t *testing.T) {
	a := newLorenzIntegrator(t)
	b := newLorenzIntegrator(t)
	b.SetStepper(integrators.NewEuler())
	b.SetStepper(nil)

	if b.Stepper().Name() != "euler" {
		t.Fatalf("stepper = %s, want euler", b.Stepper().Name())
	}

	a.Advance(0.5)
	b.Advance(0.5)
	if a.State() == b.State() {
		t.Error("euler and rk4 produced identical trajectories")
	}
}

func TestLorenzClassicalEnvelope(t *testing.T) {
	in := newLorenzIntegrator(t)
	h := in.TimeStep()

	for i := 0; i < 1000; i++ {
		in.Advance(h)
	}

	if in.Steps() != 1000 {
		t.Fatalf("steps = %d, want 1000", in.Steps())
	}
	x := in.State()
	if !dynamo.IsFinite(x) {
		t.Fatalf("state not finite: %v", x)
	}
	if math.Abs(x[0]) >= 30 || math.Abs(x[1]) >= 30 || x[2] <= 0 || x[2] >= 50 {
		t.Errorf("state %v left the attractor envelope", x)
	}
}
