package raster

import (
	"math"

	"moss-painter/internal/mathutil"
)

// Camera is an orbiting orthographic view framed on everything it renders.
type Camera struct {
	Yaw   float64 // degrees around Y
	Pitch float64 // degrees around X, positive looks down
	// Margin is the border in output pixels kept clear around the framed scene.
	Margin int
}

// DefaultCamera looks down at the scene from the front right.
func DefaultCamera() Camera {
	return Camera{Yaw: -35, Pitch: 30, Margin: 16}
}

// View returns the camera's rotation.
func (c Camera) View() mathutil.Mat3 {
	return mathutil.OrbitView(c.Yaw, c.Pitch)
}

// Framing maps view-space positions onto a square render target.
type Framing struct {
	R      mathutil.Mat3
	Center mathutil.Vec3
	Scale  float64
	Half   float64
}

// Frame fits every point of every layer into a renderSize square, leaving
// margin pixels on each side. ok is false when there is nothing to frame.
func (c Camera) Frame(layers []Layer, renderSize, margin int) (f Framing, ok bool) {
	R := c.View()
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, l := range layers {
		for _, v := range l.Vertices {
			t := R.MulVec3(v)
			lo, hi = lo.Min(t), hi.Max(t)
			ok = true
		}
	}
	if !ok {
		return Framing{}, false
	}

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	avail := renderSize - 2*margin
	if avail < 1 {
		avail = 1
	}
	return Framing{
		R:      R,
		Center: lo.Add(hi).Scale(0.5),
		Scale:  float64(avail) / span,
		Half:   float64(renderSize) / 2,
	}, true
}

// Project transforms a world-space point to screen X, screen Y (down) and depth
// (larger is nearer).
func (f *Framing) Project(v mathutil.Vec3) mathutil.Vec3 {
	t := f.R.MulVec3(v)
	return mathutil.Vec3{
		(t[0]-f.Center[0])*f.Scale + f.Half,
		-(t[1]-f.Center[1])*f.Scale + f.Half,
		t[2],
	}
}
