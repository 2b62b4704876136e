// Package formula is the single definition of every filter's color math.
//
// Each function works at an arbitrary channel scale: the sequential backend
// calls them with byte-domain channels and scale 255, the per-texel kernels
// with unit-domain channels and scale 1. Results are unclamped; the caller
// narrows them with the kind's rounding rule.
package formula

import (
	"github.com/chewxy/math32"

	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// RGB is one pixel's color channels.
type RGB [3]float32

// Byte is the scale of byte-domain channels.
const Byte float32 = numeric.MaxChannel

// Unit is the scale of normalized channels.
const Unit float32 = 1

func blend(from, to RGB, t float32) RGB {
	return RGB{
		numeric.Lerp(from[0], to[0], t),
		numeric.Lerp(from[1], to[1], t),
		numeric.Lerp(from[2], to[2], t),
	}
}

func offset(c RGB, d float32) RGB {
	return RGB{c[0] + d, c[1] + d, c[2] + d}
}

// Grayscale blends toward Rec. 709 luminance.
func Grayscale(c RGB, t float32) RGB {
	l := numeric.Luminance(c[0], c[1], c[2])
	return blend(c, RGB{l, l, l}, t)
}

// SepiaTarget is the sepia matrix applied to c.
func SepiaTarget(c RGB) RGB {
	r, g, b := numeric.SepiaTone(c[0], c[1], c[2])
	return RGB{r, g, b}
}

// Sepia blends toward the sepia tone.
func Sepia(c RGB, t float32) RGB {
	return blend(c, SepiaTarget(c), t)
}

// Invert blends toward the complement.
func Invert(c RGB, t, scale float32) RGB {
	return blend(c, RGB{scale - c[0], scale - c[1], scale - c[2]}, t)
}

// Brightness adds a uniform offset; t = 0.5 is neutral.
func Brightness(c RGB, t, scale float32) RGB {
	return offset(c, (t-0.5)*2*scale)
}

func pivot(scale float32) float32 {
	return numeric.MidGray * scale / numeric.MaxChannel
}

func stretch(c RGB, factor, scale float32) RGB {
	p := pivot(scale)
	return RGB{
		(c[0]-p)*factor + p,
		(c[1]-p)*factor + p,
		(c[2]-p)*factor + p,
	}
}

// Contrast scales distance from mid gray by 2t; t = 0.5 is neutral.
func Contrast(c RGB, t, scale float32) RGB {
	return stretch(c, t*2, scale)
}

// Saturation scales distance from luminance by 2t; t = 0.5 is neutral.
func Saturation(c RGB, t float32) RGB {
	l := numeric.Luminance(c[0], c[1], c[2])
	s := t * 2
	return RGB{l + (c[0]-l)*s, l + (c[1]-l)*s, l + (c[2]-l)*s}
}

func temperature(c RGB, d float32) RGB {
	return RGB{c[0] + d, c[1], c[2] - d}
}

// Warm pushes red up and blue down.
func Warm(c RGB, t, scale float32) RGB {
	return temperature(c, numeric.TemperatureShift*t*scale/numeric.MaxChannel)
}

// Cool pushes blue up and red down.
func Cool(c RGB, t, scale float32) RGB {
	return temperature(c, -numeric.TemperatureShift*t*scale/numeric.MaxChannel)
}

// PosterizeLevels is the number of output levels per channel.
func PosterizeLevels(t float32) float32 {
	return max(2, t*10+2)
}

// Posterize snaps every channel to the nearest of PosterizeLevels(t) levels.
func Posterize(c RGB, t, scale float32) RGB {
	step := scale / (PosterizeLevels(t) - 1)
	return RGB{
		numeric.Round(c[0]/step) * step,
		numeric.Round(c[1]/step) * step,
		numeric.Round(c[2]/step) * step,
	}
}

// NoiseSeed is the byte offset of pixel (x,y), which seeds its grain.
func NoiseSeed(x, y, width int) uint32 {
	return uint32((y*width + x) * 4)
}

// Noise adds the same pseudo-random offset to all three channels.
func Noise(c RGB, seed uint32, t, scale float32) RGB {
	n := (numeric.PseudoRandom(seed) - 0.5) * t * numeric.NoiseAmplitude * scale / numeric.MaxChannel
	return offset(c, n)
}

// Hue rotates the hue by shift degrees.
func Hue(c RGB, shift, scale float32) RGB {
	r, g, b := numeric.ShiftHue(c[0]/scale, c[1]/scale, c[2]/scale, shift)
	return RGB{r * scale, g * scale, b * scale}
}

// VintageFalloff darkens toward the corners; u and v are the pixel position
// divided by the image size.
func VintageFalloff(u, v float32) float32 {
	d := numeric.Distance(u, v, 0.5, 0.5)
	return 1 - numeric.Smoothstep(numeric.VintageFalloffInner, numeric.VintageFalloffOuter, d)
}

// Vintage composites sepia, a contrast pull and a radial falloff, then
// blends from the original by t.
func Vintage(c RGB, u, v, t, scale float32) RGB {
	s := stretch(SepiaTarget(c), numeric.VintageContrast, scale)
	f := VintageFalloff(u, v)
	return blend(c, RGB{s[0] * f, s[1] * f, s[2] * f}, t)
}

// Radial describes distance from the image center.
type Radial struct {
	CX, CY  float32
	MaxDist float32
}

// NewRadial centers on (width/2, height/2); MaxDist is the center-to-corner distance.
func NewRadial(width, height int) Radial {
	cx := float32(width) / 2
	cy := float32(height) / 2
	return Radial{CX: cx, CY: cy, MaxDist: math32.Sqrt(cx*cx + cy*cy)}
}

// Factor is the distance of (x,y) from the center relative to MaxDist.
func (r Radial) Factor(x, y int) float32 {
	if r.MaxDist == 0 {
		return 0
	}
	return numeric.Distance(float32(x), float32(y), r.CX, r.CY) / r.MaxDist
}

// VignetteFalloff is the brightness multiplier at relative distance d.
func VignetteFalloff(d, t float32) float32 {
	return 1 - min(1, d*t*numeric.VignetteReach)
}

// Vignette multiplies the color by its falloff.
func Vignette(c RGB, d, t float32) RGB {
	f := VignetteFalloff(d, t)
	return RGB{c[0] * f, c[1] * f, c[2] * f}
}

// AberrationOffset is the maximum horizontal channel shift in pixels.
func AberrationOffset(t float32) int {
	return int(t * 10)
}

// AberrationShift is the shift at relative distance d.
func AberrationShift(d float32, offset int) int {
	return int(numeric.Round(d * float32(offset)))
}
