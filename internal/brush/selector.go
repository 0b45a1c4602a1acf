// Package brush selects source triangles under a brush.
package brush

import (
	"moss-painter/internal/mathutil"
	"moss-painter/internal/scene"
)

// DebugDrawer receives every triangle a selection accepts. Used for on-screen
// feedback; optional.
type DebugDrawer interface {
	DrawTriangle(v [3]mathutil.Vec3, add bool)
}

// Selector walks cached source triangles and collects those under the brush.
type Selector struct {
	Sources *scene.Cache
	Debug   DebugDrawer

	objBuf []int
}

// NewSelector returns a selector over sources.
func NewSelector(sources *scene.Cache) *Selector {
	return &Selector{Sources: sources}
}

// SelectAt returns every source triangle facing within p.AngleTolerance of
// p.Direction whose three vertices all lie strictly inside the sphere of radius
// p.Radius around position.
func (s *Selector) SelectAt(position mathutil.Vec3, p Params) Intent {
	out := Intent{Add: p.Add}
	if s.Sources == nil || p.Radius <= 0 {
		return out
	}
	rSq := p.Radius * p.Radius

	s.objBuf = s.Sources.QueryBoundsOverlap(mathutil.CubeBounds(position, p.Radius), s.objBuf[:0])
	for _, idx := range s.objBuf {
		baked, ok := s.Sources.EnsureScanned(idx)
		if !ok {
			continue
		}
		for t := 0; t < baked.TriangleCount(); t++ {
			v, n := baked.Triangle(t)
			if !facing(n[0], p) {
				continue
			}
			if !inside(v, position, rSq) {
				continue
			}
			s.accept(&out, v, n, p.Add)
		}
	}
	return out
}

// SelectSwept selects over a whole stroke at once. Sources are pruned against the
// union of every frame's bound, then against each frame individually; a triangle
// qualifies when one single frame contains all three of its vertices.
func (s *Selector) SelectSwept(frames []mathutil.Vec3, p Params) Intent {
	out := Intent{Add: p.Add}
	if s.Sources == nil || p.Radius <= 0 || len(frames) == 0 {
		return out
	}
	union := mathutil.CubeBounds(frames[0], p.Radius)
	for _, f := range frames[1:] {
		fb := mathutil.CubeBounds(f, p.Radius)
		union.Join(&fb)
	}
	return s.selectSwept(frames, union, p)
}

// selectSwept runs a swept selection whose frame bounds are already joined
// into union.
func (s *Selector) selectSwept(frames []mathutil.Vec3, union mathutil.Box, p Params) Intent {
	out := Intent{Add: p.Add}
	rSq := p.Radius * p.Radius

	frameBounds := make([]mathutil.Box, len(frames))
	for i, f := range frames {
		frameBounds[i] = mathutil.CubeBounds(f, p.Radius)
	}

	var local []mathutil.Vec3
	s.objBuf = s.Sources.QueryBoundsOverlap(union, s.objBuf[:0])
	for _, idx := range s.objBuf {
		srcBounds, ok := s.Sources.SourceBounds(idx)
		if !ok {
			continue
		}
		local = local[:0]
		for i, fb := range frameBounds {
			if mathutil.Overlaps(srcBounds, fb) {
				local = append(local, frames[i])
			}
		}
		if len(local) == 0 {
			continue
		}

		baked, ok := s.Sources.EnsureScanned(idx)
		if !ok {
			continue
		}
		for t := 0; t < baked.TriangleCount(); t++ {
			v, n := baked.Triangle(t)
			if !facing(n[0], p) {
				continue
			}
			for _, f := range local {
				if inside(v, f, rSq) {
					s.accept(&out, v, n, p.Add)
					break
				}
			}
		}
	}
	return out
}

func (s *Selector) accept(out *Intent, v, n [3]mathutil.Vec3, add bool) {
	out.Append(v, n)
	if s.Debug != nil {
		s.Debug.DrawTriangle(v, add)
	}
}

func facing(normal mathutil.Vec3, p Params) bool {
	return mathutil.AngleDeg(p.Direction, normal) <= p.AngleTolerance
}

// inside requires every corner at squared distance below rSq; touching the
// sphere surface is outside.
func inside(v [3]mathutil.Vec3, center mathutil.Vec3, rSq float64) bool {
	for _, c := range v {
		if mathutil.DistSq(center, c) >= rSq {
			return false
		}
	}
	return true
}
