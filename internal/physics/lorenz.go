package physics

import "github.com/san-kum/chaossim/internal/dynamo"

// LorenzParams holds σ (convection rate), ρ (temperature differential)
// and β (dimension ratio).
type LorenzParams struct{ Sigma, Rho, Beta float64 }

func DefaultLorenzParams() LorenzParams { return LorenzParams{10.0, 28.0, 8.0 / 3.0} }

type Lorenz struct{ p LorenzParams }

func NewLorenz() *Lorenz { return &Lorenz{DefaultLorenzParams()} }

// NewLorenzWith builds a Lorenz model with caller-supplied coefficients.
func NewLorenzWith(p LorenzParams) (*Lorenz, error) {
	l := &Lorenz{}
	if err := l.SetParameters(p); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lorenz) Kind() dynamo.Kind          { return dynamo.KindLorenz }
func (l *Lorenz) Name() string               { return "Lorenz" }
func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{0.1, 0, 0} }
func (l *Lorenz) Params() LorenzParams       { return l.p }
func (l *Lorenz) ParamNames() []string       { return []string{"sigma", "rho", "beta"} }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{l.p.Sigma * (y - x), x*(l.p.Rho-z) - y, x*y - l.p.Beta*z}
}

func (l *Lorenz) SetParameters(p LorenzParams) error {
	if err := checkFinite(l.Name(), p.Sigma, p.Rho, p.Beta); err != nil {
		return err
	}
	l.p = p
	return nil
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.p.Sigma, "rho": l.p.Rho, "beta": l.p.Beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	p := l.p
	switch n {
	case "sigma":
		p.Sigma = v
	case "rho":
		p.Rho = v
	case "beta":
		p.Beta = v
	default:
		return unknownParam(l.Name(), n)
	}
	return l.SetParameters(p)
}
