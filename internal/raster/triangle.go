package raster

import (
	"image/color"
	"math"

	"moss-painter/internal/mathutil"
)

// RasterizeTriangle fills one projected triangle with a flat-shaded color and
// z-buffer test. The color is lit once per face; the pixel loop does not
// allocate.
func RasterizeTriangle(fb *FrameBuffer, p0, p1, p2 mathutil.Vec3, base color.NRGBA, lc *LightConfig) {
	x0, y0, z0 := p0[0], p0[1], p0[2]
	x1, y1, z1 := p1[0], p1[1], p1[2]
	x2, y2, z2 := p2[0], p2[1], p2[2]

	// Face normal for flat shading
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	nl := n.Len()
	if nl < 1e-8 {
		return
	}
	c := lc.Shade(base, lc.ComputeShade(n.Scale(1/nl)))
	if c.A < 8 {
		return
	}

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = c.R
			fb.Color[pxIdx+1] = c.G
			fb.Color[pxIdx+2] = c.B
			fb.Color[pxIdx+3] = c.A
		}
	}
}
