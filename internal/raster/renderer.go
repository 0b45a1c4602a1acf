// Package raster draws flat-shaded previews of triangle meshes in software.
package raster

import (
	"image"
	"image/color"

	"moss-painter/internal/mathutil"
)

// Layer is one mesh drawn in a single color. Indices lists vertex triples; nil
// means every consecutive triple of Vertices is a triangle.
type Layer struct {
	Vertices []mathutil.Vec3
	Indices  []int
	Color    color.NRGBA
	// Lift moves every vertex toward the camera by this many view units so
	// coplanar overlays win the depth test.
	Lift float64
}

// Triangles returns the layer's triangle count.
func (l *Layer) Triangles() int {
	if l.Indices != nil {
		return len(l.Indices) / 3
	}
	return len(l.Vertices) / 3
}

func (l *Layer) corner(t, k int) (int, bool) {
	i := 3*t + k
	if l.Indices != nil {
		i = l.Indices[i]
	}
	return i, i >= 0 && i < len(l.Vertices)
}

// RenderMesh renders layers at size*supersample pixels square. Layers are
// depth-tested against each other; the background stays transparent.
func RenderMesh(layers []Layer, cam Camera, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	fb := NewFrameBuffer(renderSize, renderSize)

	f, ok := cam.Frame(layers, renderSize, cam.Margin*supersample)
	if !ok {
		return fb.Image()
	}
	lc := DefaultLightConfig()

	for li := range layers {
		l := &layers[li]
		lift := mathutil.Vec3{0, 0, l.Lift}
		for t := 0; t < l.Triangles(); t++ {
			var p [3]mathutil.Vec3
			valid := true
			for k := 0; k < 3; k++ {
				i, ok := l.corner(t, k)
				if !ok {
					valid = false
					break
				}
				p[k] = f.Project(l.Vertices[i]).Add(lift)
			}
			if !valid {
				continue
			}
			RasterizeTriangle(fb, p[0], p[1], p[2], l.Color, &lc)
		}
	}

	return fb.Image()
}
