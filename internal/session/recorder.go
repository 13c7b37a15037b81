package session

import "github.com/san-kum/chaossim/internal/dynamo"

// Recorder collects every fixed-step state it observes. With a positive
// limit it keeps only the most recent points.
type Recorder struct {
	limit  int
	States []dynamo.State
	Times  []float64
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) OnStep(x dynamo.State, t float64) {
	r.States = append(r.States, x)
	r.Times = append(r.Times, t)
	if r.limit > 0 && len(r.States) > r.limit {
		drop := len(r.States) - r.limit
		r.States = r.States[drop:]
		r.Times = r.Times[drop:]
	}
}

func (r *Recorder) Clear() {
	r.States = r.States[:0]
	r.Times = r.Times[:0]
}

func (r *Recorder) Len() int { return len(r.States) }
