// Package viz renders a running session in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: attractor picker that hands off to the live view
//   - [Model]: live view; feeds wall-clock time to the session each tick
//   - [Canvas]: Braille-based pixel canvas with per-cell color levels
//   - [Camera]: orbiting projection with auto-rotate and auto-fit
//   - [Trail]: ring buffer of recent points, colored by speed
//
// The view never integrates anything itself. It listens for
// events.TrailsCleared to drop stale history after a reset or switch.
//
// # Key Bindings
//
//	1-5   - Switch attractor family
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Select parameter, Up/Down to tune it
//	[ ]   - Shrink/grow the time step
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
