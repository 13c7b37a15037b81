// Package dynamo provides core simulation primitives for strange attractors.
//
// The package defines the fundamental interfaces and types shared by the
// attractor models and the time-stepping engine:
//
//   - [State]: a 3D state vector (x, y, z), copied by value
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X))
//   - [Attractor]: a System with identity, parameters and a seed state
//   - [Stepper]: numerical integration scheme interface
//   - [Observer]: hook notified after every fixed step
//
// # Example
//
//	att := physics.NewLorenz()
//	in, err := sim.NewIntegrator(att, integrators.NewRK4(), att.DefaultState(), 0.01)
//	if err != nil {
//		return err
//	}
//	in.Advance(1.0 / 60)
//	x := in.State()
//
// # Thread Safety
//
// None of the types here synchronize. A model and its integrator belong to
// one goroutine; hand copies of [State] across goroutine boundaries.
package dynamo
