package integrators

import "github.com/san-kum/chaossim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta scheme. Local truncation
// error is O(dt^5).
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

// Step evaluates the derivative four times in strict order; each stage
// depends on the previous one.
func (r *RK4) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	half := dt * 0.5

	k1 := dyn.Derive(x)
	k2 := dyn.Derive(x.Add(k1.Mul(half)))
	k3 := dyn.Derive(x.Add(k2.Mul(half)))
	k4 := dyn.Derive(x.Add(k3.Mul(dt)))

	sum := k1.Add(k2.Mul(2)).Add(k3.Mul(2)).Add(k4)
	return x.Add(sum.Mul(dt / 6.0))
}
