// Package texture loads tint textures for the moss preview.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// DefaultTint is used when no moss texture is configured.
var DefaultTint = color.NRGBA{R: 86, G: 128, B: 52, A: 255}

// Load reads a TGA, PNG or JPEG file and returns it as NRGBA.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	var decode func(io.Reader) (image.Image, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tga":
		decode = tga.Decode
	case ".png":
		decode = png.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	default:
		return nil, fmt.Errorf("texture: unknown extension: %q", ext)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// LoadTint loads path and returns its average color. An empty path yields
// DefaultTint.
func LoadTint(path string) (color.NRGBA, error) {
	if path == "" {
		return DefaultTint, nil
	}
	img, err := Load(path)
	if err != nil {
		return color.NRGBA{}, err
	}
	return AverageColor(img), nil
}

// AverageColor returns the mean RGB of all texels, weighted by alpha, as an
// opaque color. Fully transparent or empty images yield DefaultTint.
func AverageColor(tex *image.NRGBA) color.NRGBA {
	b := tex.Bounds()
	var sumR, sumG, sumB, sumA float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := tex.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			i := off + x*4
			a := float64(tex.Pix[i+3])
			sumR += float64(tex.Pix[i]) * a
			sumG += float64(tex.Pix[i+1]) * a
			sumB += float64(tex.Pix[i+2]) * a
			sumA += a
		}
	}
	if sumA == 0 {
		return DefaultTint
	}
	return color.NRGBA{
		R: uint8(sumR/sumA + 0.5),
		G: uint8(sumG/sumA + 0.5),
		B: uint8(sumB/sumA + 0.5),
		A: 255,
	}
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
