package session

import "github.com/san-kum/chaossim/internal/dynamo"

// Snapshot is a value copy of everything a renderer reads in one frame.
// It shares no memory with the session.
type Snapshot struct {
	Index      int
	Name       string
	Kind       dynamo.Kind
	State      dynamo.State
	Initial    dynamo.State
	Time       float64
	Steps      int
	TimeStep   float64
	Speed      float64
	Integrator string
	ParamNames []string
	Params     map[string]float64
}

func (s *Session) Snapshot() Snapshot {
	x := s.integ.State()
	return Snapshot{
		Index:      s.index,
		Name:       s.model.Name(),
		Kind:       s.model.Kind(),
		State:      x,
		Initial:    s.integ.InitialState(),
		Time:       s.integ.Time(),
		Steps:      s.integ.Steps(),
		TimeStep:   s.integ.TimeStep(),
		Speed:      dynamo.Speed(s.model, x),
		Integrator: s.integ.Stepper().Name(),
		ParamNames: s.model.ParamNames(),
		Params:     s.model.GetParams(),
	}
}
