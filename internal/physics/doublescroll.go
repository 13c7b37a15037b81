package physics

import "github.com/san-kum/chaossim/internal/dynamo"

type DoubleScrollParams struct{ A, B, C float64 }

func DefaultDoubleScrollParams() DoubleScrollParams { return DoubleScrollParams{0.7, 0.7, 7.0} }

// DoubleScroll is a Chen-type system with weak linear damping whose
// trajectories wind around two symmetric scrolls.
type DoubleScroll struct{ p DoubleScrollParams }

func NewDoubleScroll() *DoubleScroll { return &DoubleScroll{DefaultDoubleScrollParams()} }

func NewDoubleScrollWith(p DoubleScrollParams) (*DoubleScroll, error) {
	d := &DoubleScroll{}
	if err := d.SetParameters(p); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DoubleScroll) Kind() dynamo.Kind          { return dynamo.KindDoubleScroll }
func (d *DoubleScroll) Name() string               { return "Double Scroll" }
func (d *DoubleScroll) DefaultState() dynamo.State { return dynamo.State{0.1, 0, 0} }
func (d *DoubleScroll) Params() DoubleScrollParams { return d.p }
func (d *DoubleScroll) ParamNames() []string       { return []string{"a", "b", "c"} }

func (d *DoubleScroll) Derive(s dynamo.State) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{d.p.A * (y - x), x - x*z + d.p.C*y, x*y - d.p.B*z}
}

func (d *DoubleScroll) SetParameters(p DoubleScrollParams) error {
	if err := checkFinite(d.Name(), p.A, p.B, p.C); err != nil {
		return err
	}
	d.p = p
	return nil
}

func (d *DoubleScroll) GetParams() map[string]float64 {
	return map[string]float64{"a": d.p.A, "b": d.p.B, "c": d.p.C}
}

func (d *DoubleScroll) SetParam(n string, v float64) error {
	p := d.p
	switch n {
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "c":
		p.C = v
	default:
		return unknownParam(d.Name(), n)
	}
	return d.SetParameters(p)
}
