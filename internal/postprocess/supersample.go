// Package postprocess finishes rendered previews.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled render by factor with premultiplied-alpha
// CatmullRom filtering so transparent edges do not darken. A factor of 1 or
// one larger than the image returns img unchanged.
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	b := img.Bounds()
	if factor <= 1 {
		return img
	}
	w, h := b.Dx()/factor, b.Dy()/factor
	if w < 1 || h < 1 {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	return unpremultiply(dst)
}

func unpremultiply(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(src.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				out.Pix[di] = clamp8(float64(src.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float64(src.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float64(src.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = src.Pix[si+3]
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
