// Package texel defines the per-texel kernels of the parallel backend.
//
// A kernel computes exactly one destination texel from an immutable source
// image and a four-float parameter block. Kernels never observe each other's
// output, so any dispatch order or grouping is valid. Channels are
// normalized to [0,1]; Pack narrows them back with the kind's rounding rule.
//
// Each kernel exists twice: as a Go function (Lookup) executed by the
// software device, and as WGSL source (Source) compiled by GPU devices.
// Both call the same color math, in package formula and its WGSL mirror.
package texel

import (
	"github.com/ironsheep/image-filters-mcp/internal/formula"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// Params is the uniform block: intensity, width, height and one spare slot.
// For hue adjustment the intensity slot carries the shift in degrees.
type Params [4]float32

// NewParams builds the uniform block for a width x height dispatch.
func NewParams(intensity float32, width, height int) Params {
	return Params{intensity, float32(width), float32(height), 0}
}

// Intensity is the filter strength.
func (p Params) Intensity() float32 { return p[0] }

// Texel is one unit-domain RGBA value.
type Texel [4]float32

// RGB returns the color channels.
func (t Texel) RGB() formula.RGB { return formula.RGB{t[0], t[1], t[2]} }

// With replaces the color channels and keeps alpha.
func (t Texel) With(c formula.RGB) Texel { return Texel{c[0], c[1], c[2], t[3]} }

// Unpack decodes a little-endian packed RGBA8 word.
func Unpack(w uint32) Texel {
	return Texel{
		numeric.Unit(uint8(w)),
		numeric.Unit(uint8(w >> 8)),
		numeric.Unit(uint8(w >> 16)),
		numeric.Unit(uint8(w >> 24)),
	}
}

// Pack narrows t to RGBA8 using rule for the color channels. Alpha always
// rounds to nearest, which reproduces the source byte exactly.
func Pack(t Texel, rule numeric.Rounding) uint32 {
	r := numeric.Denormalize(numeric.Requantize(t[0], rule))
	g := numeric.Denormalize(numeric.Requantize(t[1], rule))
	b := numeric.Denormalize(numeric.Requantize(t[2], rule))
	a := numeric.Denormalize(t[3])
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// PackBytes reinterprets an RGBA8 buffer as packed words.
func PackBytes(pix []byte) []uint32 {
	out := make([]uint32, len(pix)/4)
	for i := range out {
		j := i * 4
		out[i] = uint32(pix[j]) | uint32(pix[j+1])<<8 | uint32(pix[j+2])<<16 | uint32(pix[j+3])<<24
	}
	return out
}

// UnpackBytes is the inverse of PackBytes.
func UnpackBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		j := i * 4
		out[j], out[j+1], out[j+2], out[j+3] = uint8(w), uint8(w>>8), uint8(w>>16), uint8(w>>24)
	}
	return out
}

// Image is a read-only packed source.
type Image struct {
	Texels []uint32
	Width  int
	Height int
}

// At loads texel (x,y). Coordinates are clamped to the image, matching the
// clamped load in the WGSL prelude.
func (im Image) At(x, y int) Texel {
	x = numeric.ClampInt(x, 0, im.Width-1)
	y = numeric.ClampInt(y, 0, im.Height-1)
	return Unpack(im.Texels[y*im.Width+x])
}

// Border reports whether (x,y) lies on the outermost row or column.
func (im Image) Border(x, y int) bool {
	return x == 0 || y == 0 || x == im.Width-1 || y == im.Height-1
}
