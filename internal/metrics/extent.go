package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/chaossim/internal/dynamo"
)

var axes = [3]string{"x", "y", "z"}

// Columns splits states into per-axis slices.
func Columns(states []dynamo.State) [3][]float64 {
	var cols [3][]float64
	for i := range cols {
		cols[i] = make([]float64, len(states))
	}
	for j, s := range states {
		cols[0][j], cols[1][j], cols[2][j] = s[0], s[1], s[2]
	}
	return cols
}

// Extent reports min, max and mean per axis, keyed "x_min", "x_max",
// "x_mean" and so on. Empty input yields an empty map.
func Extent(states []dynamo.State) map[string]float64 {
	out := make(map[string]float64, 9)
	if len(states) == 0 {
		return out
	}
	n := float64(len(states))
	for i, col := range Columns(states) {
		out[axes[i]+"_min"] = floats.Min(col)
		out[axes[i]+"_max"] = floats.Max(col)
		out[axes[i]+"_mean"] = floats.Sum(col) / n
	}
	return out
}
