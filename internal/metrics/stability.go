package metrics

import (
	"math"

	"github.com/san-kum/chaossim/internal/dynamo"
)

// Stability is the fraction of steps whose every coordinate stayed finite
// and within threshold.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) OnStep(x dynamo.State, t float64) {
	s.samples++
	if !dynamo.IsFinite(x) {
		s.violations++
		return
	}
	for _, val := range x {
		if math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
