// Package physics provides the strange attractor models.
//
// Each model implements [dynamo.Attractor]: the derivative equations of one
// attractor family, its classical coefficients and a seed state slightly off
// the origin so trajectories do not start on an equilibrium point.
//
//   - [Lorenz]: the butterfly, convection rolls
//   - [Rossler]: single-band spiral with a folding funnel
//   - [Chen]: Lorenz-like double scroll with different coupling
//   - [Chua]: electronic circuit with a piecewise-linear diode
//   - [DoubleScroll]: Chen-type system with weak damping
//
// Coefficients live in a value struct per family. SetParameters swaps the
// whole struct at once so a derivative evaluation never sees a half-updated
// set; SetParam goes through the same path.
//
//	att := physics.NewLorenz()
//	_ = att.SetParameters(physics.LorenzParams{Sigma: 10, Rho: 99.96, Beta: 8.0 / 3.0})
package physics
