package physics

import "github.com/san-kum/chaossim/internal/dynamo"

// RosslerParams holds the coupling a, offset b and nonlinearity c.
type RosslerParams struct{ A, B, C float64 }

func DefaultRosslerParams() RosslerParams { return RosslerParams{0.2, 0.2, 5.7} }

type Rossler struct{ p RosslerParams }

func NewRossler() *Rossler { return &Rossler{DefaultRosslerParams()} }

func NewRosslerWith(p RosslerParams) (*Rossler, error) {
	r := &Rossler{}
	if err := r.SetParameters(p); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rossler) Kind() dynamo.Kind          { return dynamo.KindRossler }
func (r *Rossler) Name() string               { return "Rössler" }
func (r *Rossler) DefaultState() dynamo.State { return dynamo.State{0.1, 0, 0} }
func (r *Rossler) Params() RosslerParams      { return r.p }
func (r *Rossler) ParamNames() []string       { return []string{"a", "b", "c"} }

// Derive calculates the Rossler attractor derivatives.
func (r *Rossler) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{-s[1] - s[2], s[0] + r.p.A*s[1], r.p.B + s[2]*(s[0]-r.p.C)}
}

func (r *Rossler) SetParameters(p RosslerParams) error {
	if err := checkFinite(r.Name(), p.A, p.B, p.C); err != nil {
		return err
	}
	r.p = p
	return nil
}

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.p.A, "b": r.p.B, "c": r.p.C}
}

func (r *Rossler) SetParam(n string, v float64) error {
	p := r.p
	switch n {
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "c":
		p.C = v
	default:
		return unknownParam(r.Name(), n)
	}
	return r.SetParameters(p)
}
