package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is an (x, y, z) point in the attractor's phase space.
type State = mgl64.Vec3

// IsFinite reports whether every component of s is neither NaN nor Inf.
func IsFinite(s State) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Kind identifies an attractor family.
type Kind int

const (
	KindLorenz Kind = iota
	KindRossler
	KindChen
	KindChua
	KindDoubleScroll
)

var kindNames = [...]string{
	KindLorenz:       "lorenz",
	KindRossler:      "rossler",
	KindChen:         "chen",
	KindChua:         "chua",
	KindDoubleScroll: "double_scroll",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// System is an autonomous first-order ODE in three dimensions.
//
// Derive must not mutate any state of its own: a Stepper calls it several
// times per step with intermediate points, not only the current state.
type System interface {
	Derive(x State) State
}

// Configurable exposes a model's coefficients by name.
type Configurable interface {
	ParamNames() []string
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Attractor is a System with a fixed identity, named parameters and a
// recommended seed state.
type Attractor interface {
	System
	Configurable
	Kind() Kind
	Name() string
	DefaultState() State
}

// Stepper advances x by exactly dt using some numerical scheme.
type Stepper interface {
	Name() string
	Step(dyn System, x State, dt float64) State
}

// Observer is notified after every completed integration step with the new
// state and simulated time.
type Observer interface {
	OnStep(x State, t float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(x State, t float64)

func (f ObserverFunc) OnStep(x State, t float64) { f(x, t) }

// Speed is the magnitude of the instantaneous velocity at x.
func Speed(sys System, x State) float64 {
	return sys.Derive(x).Len()
}
