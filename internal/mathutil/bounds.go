package mathutil

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Box is an axis-aligned world-space bounding box.
type Box = vec3.Box

// CubeBounds returns the box centered at c with the given half-extent on every axis.
func CubeBounds(c Vec3, halfExtent float64) Box {
	return Box{
		Min: vec3.T{c[0] - halfExtent, c[1] - halfExtent, c[2] - halfExtent},
		Max: vec3.T{c[0] + halfExtent, c[1] + halfExtent, c[2] + halfExtent},
	}
}

// PointsBounds returns the tightest box around pts. ok is false for an empty slice.
func PointsBounds(pts []Vec3) (box Box, ok bool) {
	if len(pts) == 0 {
		return Box{}, false
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	return Box{Min: vec3.T(lo), Max: vec3.T(hi)}, true
}

// Overlaps reports whether two boxes intersect. Touching faces count.
func Overlaps(a, b Box) bool {
	return a.Intersects(&b)
}

// DistSq returns the squared distance between two points.
func DistSq(a, b Vec3) float64 {
	va, vb := vec3.T(a), vec3.T(b)
	return vec3.SquareDistance(&va, &vb)
}

// AngleDeg returns the angle between two directions in degrees (0–180).
// A zero-length input yields 0.
func AngleDeg(a, b Vec3) float64 {
	if a.LenSq() < 1e-30 || b.LenSq() < 1e-30 {
		return 0
	}
	va, vb := vec3.T(a), vec3.T(b)
	return vec3.Angle(&va, &vb) * 180 / math.Pi
}
