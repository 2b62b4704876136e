package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scaled(c RGB, s float32) RGB {
	return RGB{c[0] * s, c[1] * s, c[2] * s}
}

func assertRGBInDelta(t *testing.T, want, got RGB, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "channel %d", i)
	}
}

// Byte-domain and unit-domain evaluation must describe the same color.
func TestScaleInvariance(t *testing.T) {
	c := RGB{0.3, 0.55, 0.8}
	const tt = 0.5

	tests := []struct {
		name string
		f    func(c RGB, scale float32) RGB
	}{
		{"invert", func(c RGB, s float32) RGB { return Invert(c, tt, s) }},
		{"brightness", func(c RGB, s float32) RGB { return Brightness(c, 0.7, s) }},
		{"contrast", func(c RGB, s float32) RGB { return Contrast(c, tt, s) }},
		{"warm", func(c RGB, s float32) RGB { return Warm(c, tt, s) }},
		{"cool", func(c RGB, s float32) RGB { return Cool(c, tt, s) }},
		{"posterize", func(c RGB, s float32) RGB { return Posterize(c, tt, s) }},
		{"noise", func(c RGB, s float32) RGB { return Noise(c, NoiseSeed(3, 2, 10), tt, s) }},
		{"hue", func(c RGB, s float32) RGB { return Hue(c, 90, s) }},
		{"vintage", func(c RGB, s float32) RGB { return Vintage(c, 0.2, 0.7, tt, s) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := tc.f(c, Unit)
			bytes := tc.f(scaled(c, Byte), Byte)
			assertRGBInDelta(t, unit, scaled(bytes, 1/Byte), 1e-4)
		})
	}
}

func TestIdentityAtZero(t *testing.T) {
	c := RGB{40, 120, 200}

	assertRGBInDelta(t, c, Grayscale(c, 0), 1e-4)
	assertRGBInDelta(t, c, Sepia(c, 0), 1e-4)
	assertRGBInDelta(t, c, Invert(c, 0, Byte), 1e-4)
	assertRGBInDelta(t, c, Vintage(c, 0.1, 0.9, 0, Byte), 1e-4)
	assertRGBInDelta(t, c, Brightness(c, 0.5, Byte), 1e-4)
}

func TestGrayscaleRed(t *testing.T) {
	g := Grayscale(RGB{255, 0, 0}, 1)
	assertRGBInDelta(t, RGB{54.213, 54.213, 54.213}, g, 1e-3)
}

func TestEmbossScaleInvariance(t *testing.T) {
	unit := Emboss(0.5, 0.8, 0.2, 0.6, Unit)
	bytes := Emboss(0.5*Byte, 0.8*Byte, 0.2*Byte, 0.6, Byte)
	assert.InDelta(t, unit, bytes/Byte, 1e-4)
}

func TestParameterCurves(t *testing.T) {
	assert.Equal(t, float32(2), PosterizeLevels(0))
	assert.Equal(t, float32(12), PosterizeLevels(1))

	assert.Equal(t, 1, BlurRadius(0))
	assert.Equal(t, 11, BlurRadius(1))

	assert.Equal(t, 1, PixelateBlock(0))
	assert.Equal(t, 21, PixelateBlock(1))

	assert.Equal(t, 0, AberrationOffset(0))
	assert.Equal(t, 10, AberrationOffset(1))
	assert.Equal(t, 5, AberrationShift(1, 5))
	assert.Equal(t, 0, AberrationShift(0, 10))
}

func TestRadial(t *testing.T) {
	r := NewRadial(10, 10)
	assert.InDelta(t, 0, r.Factor(5, 5), 1e-6)
	assert.InDelta(t, 1, r.Factor(0, 0), 1e-6)

	assert.Equal(t, float32(0), NewRadial(0, 0).Factor(0, 0))

	assert.Equal(t, float32(1), VignetteFalloff(0, 1))
	assert.GreaterOrEqual(t, VignetteFalloff(1, 1), float32(0))
}

func TestVintageFalloff(t *testing.T) {
	assert.InDelta(t, 1, VintageFalloff(0.5, 0.5), 1e-6)
	corner := VintageFalloff(0, 0)
	assert.Greater(t, corner, float32(0))
	assert.Less(t, corner, float32(0.2))
	assert.InDelta(t, 1, VintageFalloff(0.45, 0.55), 1e-6)
}
