package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsampleSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	out := Downsample(img, 2)
	require.Equal(t, image.Rect(0, 0, 8, 4), out.Bounds())

	assert.Same(t, img, Downsample(img, 1))
	assert.Same(t, img, Downsample(img, 32))
}

func TestDownsampleKeepsOpaqueColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	moss := color.NRGBA{R: 60, G: 140, B: 40, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, moss)
		}
	}
	out := Downsample(img, 2)
	c := out.NRGBAAt(2, 2)
	assert.Equal(t, uint8(255), c.A)
	assert.InDelta(t, 60, int(c.R), 1)
	assert.InDelta(t, 140, int(c.G), 1)
	assert.InDelta(t, 40, int(c.B), 1)
}

func TestDownsampleNoDarkHalo(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	out := Downsample(img, 2)
	for x := 0; x < 4; x++ {
		c := out.NRGBAAt(x, 1)
		if c.A > 16 {
			assert.GreaterOrEqual(t, int(c.R), 197, "column %d", x)
		}
	}
}
