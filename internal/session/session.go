// Package session is the composition root of the simulation core: it binds
// one attractor model to one fixed-step integrator and mediates switching
// between attractor families.
//
// A Session is driven from a single goroutine: one frame tick handles input,
// calls Advance, then renders. Renderers on other goroutines must work from
// a [Snapshot].
package session

import (
	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/events"
	"github.com/san-kum/chaossim/internal/integrators"
	"github.com/san-kum/chaossim/internal/sim"
)

// Config carries the integration settings that survive a family switch.
type Config struct {
	TimeStep    float64
	MaxSubSteps int
	Integrator  string
}

func DefaultConfig() Config {
	return Config{
		TimeStep:   sim.DefaultTimeStep,
		Integrator: "rk4",
	}
}

type Session struct {
	registry  *catalog.Registry
	cfg       Config
	index     int
	model     dynamo.Attractor
	integ     *sim.Integrator
	stepper   dynamo.Stepper
	observers []dynamo.Observer
	bus       events.Bus
}

// New starts a session on the family registered at index.
func New(reg *catalog.Registry, index int, cfg Config) (*Session, error) {
	if cfg.Integrator == "" {
		cfg.Integrator = "rk4"
	}
	stepper, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	s := &Session{registry: reg, cfg: cfg, stepper: stepper}
	model, integ, err := s.build(index)
	if err != nil {
		return nil, err
	}
	s.index, s.model, s.integ = index, model, integ
	return s, nil
}

// build constructs a fresh model+integrator pair without touching s. The
// installed stepper is shared; steppers hold no state between calls.
func (s *Session) build(index int) (dynamo.Attractor, *sim.Integrator, error) {
	model, err := s.registry.CreateByIndex(index)
	if err != nil {
		return nil, nil, err
	}
	integ, err := sim.NewIntegrator(model, s.stepper, model.DefaultState(), s.cfg.TimeStep)
	if err != nil {
		return nil, nil, err
	}
	integ.SetMaxSubSteps(s.cfg.MaxSubSteps)
	for _, o := range s.observers {
		integ.AddObserver(o)
	}
	return model, integ, nil
}

// Advance feeds one frame's wall-clock delta to the integrator.
func (s *Session) Advance(dt float64) sim.AdvanceReport {
	return s.integ.Advance(dt)
}

// Reset returns to the initial state of the current family and clears trails.
func (s *Session) Reset() {
	s.integ.Reset()
	events.Publish(&s.bus, events.TrailsCleared{Reason: events.ClearReset})
}

// SwitchTo replaces the model+integrator pair with a fresh one for the
// family at index. On error the current pair stays active.
func (s *Session) SwitchTo(index int) error {
	model, integ, err := s.build(index)
	if err != nil {
		return err
	}
	from := s.index
	s.index, s.model, s.integ = index, model, integ

	events.Publish(&s.bus, events.TrailsCleared{Reason: events.ClearSwitch})
	events.Publish(&s.bus, events.ModelSwitched{From: from, To: index, Name: model.Name()})
	return nil
}

func (s *Session) SwitchToName(name string) error {
	idx, err := s.registry.IndexOf(name)
	if err != nil {
		return err
	}
	return s.SwitchTo(idx)
}

// SetInitialState re-seeds the trajectory; the current state jumps there
// immediately.
func (s *Session) SetInitialState(x dynamo.State) {
	s.integ.SetInitialState(x)
	events.Publish(&s.bus, events.TrailsCleared{Reason: events.ClearReseed})
}

func (s *Session) SetTimeStep(h float64) error {
	if err := s.integ.SetTimeStep(h); err != nil {
		return err
	}
	s.cfg.TimeStep = h
	return nil
}

func (s *Session) SetMaxSubSteps(n int) {
	s.integ.SetMaxSubSteps(n)
	s.cfg.MaxSubSteps = s.integ.MaxSubSteps()
}

// SetIntegrator swaps the stepping scheme by name, keeping state.
func (s *Session) SetIntegrator(name string) error {
	stepper, err := integrators.Get(name)
	if err != nil {
		return err
	}
	s.integ.SetStepper(stepper)
	s.stepper = stepper
	s.cfg.Integrator = name
	return nil
}

// SetStepper installs an already-built scheme, which need not be registered
// with the integrators package. It stays in use across switches. A nil
// stepper is ignored.
func (s *Session) SetStepper(st dynamo.Stepper) {
	if st == nil {
		return
	}
	s.integ.SetStepper(st)
	s.stepper = st
	s.cfg.Integrator = st.Name()
}

// SetParam sets one coefficient of the active model. Values must be finite.
func (s *Session) SetParam(name string, v float64) error {
	return s.model.SetParam(name, v)
}

// AddObserver attaches o to the current integrator and to every integrator
// built by later switches.
func (s *Session) AddObserver(o dynamo.Observer) {
	s.observers = append(s.observers, o)
	s.integ.AddObserver(o)
}

// Bus is where TrailsCleared and ModelSwitched are published.
func (s *Session) Bus() *events.Bus { return &s.bus }

func (s *Session) Model() dynamo.Attractor     { return s.model }
func (s *Session) Registry() *catalog.Registry { return s.registry }
func (s *Session) Index() int                  { return s.index }
func (s *Session) Name() string                { return s.model.Name() }
func (s *Session) Kind() dynamo.Kind           { return s.model.Kind() }
func (s *Session) CurrentState() dynamo.State  { return s.integ.State() }
func (s *Session) InitialState() dynamo.State  { return s.integ.InitialState() }
func (s *Session) TimeStep() float64           { return s.integ.TimeStep() }
func (s *Session) MaxSubSteps() int            { return s.integ.MaxSubSteps() }
func (s *Session) IntegratorName() string      { return s.integ.Stepper().Name() }
func (s *Session) Time() float64               { return s.integ.Time() }
func (s *Session) Steps() int                  { return s.integ.Steps() }
func (s *Session) Residual() float64           { return s.integ.Residual() }
func (s *Session) Params() map[string]float64  { return s.model.GetParams() }
func (s *Session) ParamNames() []string        { return s.model.ParamNames() }
