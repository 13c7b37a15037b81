// Package metrics reduces a trajectory to a handful of scalars stored with
// each recorded run.
package metrics

import "github.com/san-kum/chaossim/internal/dynamo"

// Metric observes every fixed step of a run.
type Metric interface {
	dynamo.Observer
	Name() string
	Value() float64
	Reset()
}

// Collect reads the current value of each metric into a map keyed by name.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
