package viz

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
)

// Trail is a fixed-capacity ring of recent points with the speed at which
// each was visited. Pushing past capacity overwrites the oldest point.
type Trail struct {
	points []mgl64.Vec3
	speeds []float64
	head   int
	n      int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{
		points: make([]mgl64.Vec3, capacity),
		speeds: make([]float64, capacity),
	}
}

func (t *Trail) Push(p mgl64.Vec3, speed float64) {
	t.points[t.head] = p
	t.speeds[t.head] = speed
	t.head = (t.head + 1) % len(t.points)
	if t.n < len(t.points) {
		t.n++
	}
}

func (t *Trail) Clear() {
	t.head = 0
	t.n = 0
}

func (t *Trail) Len() int      { return t.n }
func (t *Trail) Capacity() int { return len(t.points) }

// At returns the i-th point counting from the oldest.
func (t *Trail) At(i int) (mgl64.Vec3, float64) {
	j := (t.head - t.n + i + len(t.points)) % len(t.points)
	return t.points[j], t.speeds[j]
}

// Last returns the newest point; ok is false on an empty trail.
func (t *Trail) Last() (p mgl64.Vec3, speed float64, ok bool) {
	if t.n == 0 {
		return mgl64.Vec3{}, 0, false
	}
	p, speed = t.At(t.n - 1)
	return p, speed, true
}

// Points copies the trail out, oldest first.
func (t *Trail) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, t.n)
	for i := range out {
		out[i], _ = t.At(i)
	}
	return out
}

// Bounds returns the axis-aligned box around the trail.
func (t *Trail) Bounds() (lo, hi mgl64.Vec3, ok bool) {
	if t.n == 0 {
		return lo, hi, false
	}
	col := make([]float64, t.n)
	for axis := 0; axis < 3; axis++ {
		for i := range col {
			p, _ := t.At(i)
			col[i] = p[axis]
		}
		lo[axis] = floats.Min(col)
		hi[axis] = floats.Max(col)
	}
	return lo, hi, true
}

// SpeedRange returns the slowest and fastest speed on the trail.
func (t *Trail) SpeedRange() (float64, float64) {
	if t.n == 0 {
		return 0, 0
	}
	s := make([]float64, t.n)
	for i := range s {
		_, s[i] = t.At(i)
	}
	return floats.Min(s), floats.Max(s)
}
