package physics

import (
	"math"

	"github.com/san-kum/chaossim/internal/dynamo"
)

// ChuaParams holds the capacitor ratio alpha, the inductor ratio beta and the
// inner (M0) and outer (M1) slopes of the diode characteristic.
type ChuaParams struct{ Alpha, Beta, M0, M1 float64 }

func DefaultChuaParams() ChuaParams { return ChuaParams{15.6, 28.0, -1.143, -0.714} }

// Chua models Chua's circuit with a three-segment piecewise-linear diode.
type Chua struct{ p ChuaParams }

func NewChua() *Chua { return &Chua{DefaultChuaParams()} }

func NewChuaWith(p ChuaParams) (*Chua, error) {
	c := &Chua{}
	if err := c.SetParameters(p); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chua) Kind() dynamo.Kind          { return dynamo.KindChua }
func (c *Chua) Name() string               { return "Chua" }
func (c *Chua) DefaultState() dynamo.State { return dynamo.State{0.1, 0, 0} }
func (c *Chua) Params() ChuaParams         { return c.p }
func (c *Chua) ParamNames() []string       { return []string{"alpha", "beta", "m0", "m1"} }

// diode is the Chua diode current h(x).
func (c *Chua) diode(x float64) float64 {
	return c.p.M1*x + 0.5*(c.p.M0-c.p.M1)*(math.Abs(x+1)-math.Abs(x-1))
}

func (c *Chua) Derive(s dynamo.State) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{c.p.Alpha * (y - x - c.diode(x)), x - y + z, -c.p.Beta * y}
}

func (c *Chua) SetParameters(p ChuaParams) error {
	if err := checkFinite(c.Name(), p.Alpha, p.Beta, p.M0, p.M1); err != nil {
		return err
	}
	c.p = p
	return nil
}

func (c *Chua) GetParams() map[string]float64 {
	return map[string]float64{"alpha": c.p.Alpha, "beta": c.p.Beta, "m0": c.p.M0, "m1": c.p.M1}
}

func (c *Chua) SetParam(n string, v float64) error {
	p := c.p
	switch n {
	case "alpha":
		p.Alpha = v
	case "beta":
		p.Beta = v
	case "m0":
		p.M0 = v
	case "m1":
		p.M1 = v
	default:
		return unknownParam(c.Name(), n)
	}
	return c.SetParameters(p)
}
