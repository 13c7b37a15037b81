package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits a target point and projects world coordinates onto the
// canvas with a weak perspective.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Distance   float64
	AutoRotate float64
	Target     mgl64.Vec3
	// Scale maps world units to a unit cube before zoom is applied.
	Scale float64
}

func NewCamera() *Camera {
	return &Camera{
		Pitch:      0.35,
		Zoom:       1.0,
		Distance:   6.0,
		AutoRotate: 0.004,
		Scale:      1.0,
	}
}

func (c *Camera) Rotate(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = mgl64.Clamp(c.Pitch+dpitch, -math.Pi/2, math.Pi/2)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Tick applies one frame of automatic rotation.
func (c *Camera) Tick() { c.Yaw += c.AutoRotate }

// Fit centers the camera on the box [lo, hi] and scales it to a unit cube.
func (c *Camera) Fit(lo, hi mgl64.Vec3) {
	c.Target = lo.Add(hi).Mul(0.5)
	span := hi.Sub(lo)
	extent := math.Max(span.X(), math.Max(span.Y(), span.Z()))
	if extent <= 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		c.Scale = 1
		return
	}
	c.Scale = 2 / extent
}

// View is the rotation applied to points relative to the target.
func (c *Camera) View() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DY(c.Yaw))
}

// Project maps p to sub-pixel screen coordinates on a sw x sh canvas.
// World z is up. Returns x, y, depth, and visibility.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	d := p.Sub(c.Target).Mul(c.Scale * c.Zoom)
	rot := c.View().Mul3x1(mgl64.Vec3{d.X(), d.Z(), d.Y()})
	depth := c.Distance - rot.Z()
	if depth <= 0.1 {
		return 0, 0, 0, false
	}
	persp := c.Distance / depth
	pScale := float64(min(sw, sh)) / 4
	sx := int(rot.X()*persp*pScale) + sw/2
	sy := int(-rot.Y()*persp*pScale) + sh/2
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
