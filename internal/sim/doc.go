// Package sim advances an attractor through time.
//
// [Integrator] decouples simulated time from the caller's frame rate: every
// Advance adds the wall-clock delta to a residual and consumes it in
// constant-size steps, so the numerical scheme always sees the same step
// size regardless of how irregular the frame cadence is.
//
// [Run] and [RunEnsemble] drive integrators headlessly for a fixed amount
// of simulated time.
package sim
