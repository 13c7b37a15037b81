package integrators

import "github.com/san-kum/chaossim/internal/dynamo"

// Euler is the explicit first-order scheme. It is cheap but drifts quickly on
// chaotic systems; RK4 is the default.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	return x.Add(dyn.Derive(x).Mul(dt))
}
