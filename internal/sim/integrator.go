package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/integrators"
)

// DefaultTimeStep is 10ms of simulated time per step.
const DefaultTimeStep = 0.01

// AdvanceReport describes what one Advance call did.
type AdvanceReport struct {
	Steps   int // fixed steps performed
	Dropped int // whole steps discarded by the sub-step cap
}

// Integrator owns the current and initial state of one system and steps it
// with a fixed time step.
//
// After Advance returns, Residual is always in [0, TimeStep).
type Integrator struct {
	dyn         dynamo.System
	stepper     dynamo.Stepper
	state       dynamo.State
	initial     dynamo.State
	timeStep    float64
	residual    float64
	time        float64
	steps       int
	maxSubSteps int
	observers   []dynamo.Observer
}

// NewIntegrator binds dyn to a stepping scheme, seeded at x0. A nil stepper
// selects RK4.
func NewIntegrator(dyn dynamo.System, stepper dynamo.Stepper, x0 dynamo.State, timeStep float64) (*Integrator, error) {
	if err := validateStep(timeStep); err != nil {
		return nil, err
	}
	if stepper == nil {
		stepper = integrators.NewRK4()
	}
	return &Integrator{
		dyn:      dyn,
		stepper:  stepper,
		state:    x0,
		initial:  x0,
		timeStep: timeStep,
	}, nil
}

// ValidateDelta reports why Advance would ignore dt, or nil if it would not.
func ValidateDelta(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidTimeDelta, dt)
	}
	return nil
}

func validateStep(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidTimeStep, h)
	}
	return nil
}

// Advance consumes dt seconds of wall-clock time in fixed steps. Invalid
// deltas are ignored without touching state or residual.
//
// With no sub-step cap every whole step in the residual is taken. Once the
// residual reaches about 2^53 steps, subtracting one step no longer changes
// it and Advance never returns; callers that can see such deltas (a resumed
// debugger, a suspended laptop) must set a cap with SetMaxSubSteps.
func (in *Integrator) Advance(dt float64) AdvanceReport {
	var rep AdvanceReport
	if ValidateDelta(dt) != nil {
		return rep
	}

	in.residual += dt
	for in.residual >= in.timeStep {
		if in.maxSubSteps > 0 && rep.Steps >= in.maxSubSteps {
			rep.Dropped = wholeSteps(in.residual, in.timeStep)
			in.residual = math.Mod(in.residual, in.timeStep)
			break
		}
		in.step()
		in.residual -= in.timeStep
		rep.Steps++
	}
	return rep
}

// wholeSteps is floor(r/h), saturated at math.MaxInt.
func wholeSteps(r, h float64) int {
	q := math.Floor(r / h)
	if q >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(q)
}

// Step performs exactly one fixed step, bypassing the residual.
func (in *Integrator) Step() {
	in.step()
}

func (in *Integrator) step() {
	in.state = in.stepper.Step(in.dyn, in.state, in.timeStep)
	in.time += in.timeStep
	in.steps++
	for _, o := range in.observers {
		o.OnStep(in.state, in.time)
	}
}

// Reset restores the initial state and clears the residual and clock.
// Parameters of the bound system are left alone.
func (in *Integrator) Reset() {
	in.state = in.initial
	in.residual = 0
	in.time = 0
	in.steps = 0
}

// SetInitialState re-seeds the trajectory. The live state is overwritten
// immediately, not on the next Reset.
func (in *Integrator) SetInitialState(x dynamo.State) {
	in.initial = x
	in.state = x
}

// SetTimeStep changes the fixed step. Advance reads it at every sub-step
// boundary, so a change never splits a step.
func (in *Integrator) SetTimeStep(h float64) error {
	if err := validateStep(h); err != nil {
		return err
	}
	in.timeStep = h
	return nil
}

// SetMaxSubSteps caps the steps one Advance may take; 0 disables the cap.
func (in *Integrator) SetMaxSubSteps(n int) {
	if n < 0 {
		n = 0
	}
	in.maxSubSteps = n
}

func (in *Integrator) SetStepper(s dynamo.Stepper) {
	if s != nil {
		in.stepper = s
	}
}

func (in *Integrator) AddObserver(o dynamo.Observer) { in.observers = append(in.observers, o) }

func (in *Integrator) System() dynamo.System      { return in.dyn }
func (in *Integrator) Stepper() dynamo.Stepper    { return in.stepper }
func (in *Integrator) State() dynamo.State        { return in.state }
func (in *Integrator) InitialState() dynamo.State { return in.initial }
func (in *Integrator) TimeStep() float64          { return in.timeStep }
func (in *Integrator) Residual() float64          { return in.residual }
func (in *Integrator) Time() float64              { return in.time }
func (in *Integrator) Steps() int                 { return in.steps }
func (in *Integrator) MaxSubSteps() int           { return in.maxSubSteps }
