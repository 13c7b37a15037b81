package physics

import "github.com/san-kum/chaossim/internal/dynamo"

// ChenParams holds the coupling a, damping b and bifurcation parameter c.
type ChenParams struct{ A, B, C float64 }

func DefaultChenParams() ChenParams { return ChenParams{35.0, 3.0, 28.0} }

// Chen is the Chen system, a dual of Lorenz in the sense of Vanecek-Celikovsky.
type Chen struct{ p ChenParams }

func NewChen() *Chen { return &Chen{DefaultChenParams()} }

func NewChenWith(p ChenParams) (*Chen, error) {
	c := &Chen{}
	if err := c.SetParameters(p); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chen) Kind() dynamo.Kind          { return dynamo.KindChen }
func (c *Chen) Name() string               { return "Chen" }
func (c *Chen) DefaultState() dynamo.State { return dynamo.State{-0.1, 0.5, -0.6} }
func (c *Chen) Params() ChenParams         { return c.p }
func (c *Chen) ParamNames() []string       { return []string{"a", "b", "c"} }

func (c *Chen) Derive(s dynamo.State) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		c.p.A * (y - x),
		(c.p.C-c.p.A)*x - x*z + c.p.C*y,
		x*y - c.p.B*z,
	}
}

func (c *Chen) SetParameters(p ChenParams) error {
	if err := checkFinite(c.Name(), p.A, p.B, p.C); err != nil {
		return err
	}
	c.p = p
	return nil
}

func (c *Chen) GetParams() map[string]float64 {
	return map[string]float64{"a": c.p.A, "b": c.p.B, "c": c.p.C}
}

func (c *Chen) SetParam(n string, v float64) error {
	p := c.p
	switch n {
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "c":
		p.C = v
	default:
		return unknownParam(c.Name(), n)
	}
	return c.SetParameters(p)
}
