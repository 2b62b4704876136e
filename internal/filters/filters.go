// Package filters is the sequential reference backend.
//
// Every filter reads a source RGBA buffer (row-major, 4 bytes per pixel) and
// writes a freshly allocated destination of the same size; the source is
// never modified. The color math comes from package formula, which the
// per-texel kernels share, and each channel is narrowed to a byte with the
// rounding rule its catalog.Kind declares.
//
// Functions here assume len(pix) == width*height*4. Callers validate that
// first; see package engine.
package filters

import (
	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/formula"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// Func writes a filtered copy of src into dst. dst starts as a copy of src,
// so filters that leave pixels untouched need not write them.
type Func func(dst, src []byte, width, height int, intensity float32)

var table = [...]Func{
	catalog.Grayscale:           grayscale,
	catalog.Sepia:               sepia,
	catalog.Invert:              invert,
	catalog.Brightness:          brightness,
	catalog.Contrast:            contrast,
	catalog.Saturation:          saturation,
	catalog.Blur:                Blur,
	catalog.Sharpen:             Sharpen,
	catalog.Vignette:            Vignette,
	catalog.Vintage:             Vintage,
	catalog.Warm:                warm,
	catalog.Cool:                cool,
	catalog.Posterize:           posterize,
	catalog.Emboss:              Emboss,
	catalog.EdgeDetect:          EdgeDetect,
	catalog.Noise:               Noise,
	catalog.Pixelate:            Pixelate,
	catalog.ChromaticAberration: ChromaticAberration,
}

// Lookup returns the sequential implementation of k.
func Lookup(k catalog.Kind) (Func, bool) {
	if !k.Valid() || int(k) >= len(table) || table[k] == nil {
		return nil, false
	}
	return table[k], true
}

// Apply runs filter k over pix and returns the result in a new buffer.
// It returns nil, false for a kind outside the catalog.
func Apply(k catalog.Kind, pix []byte, width, height int, intensity float32) ([]byte, bool) {
	fn, ok := Lookup(k)
	if !ok {
		return nil, false
	}
	dst := make([]byte, len(pix))
	copy(dst, pix)
	fn(dst, pix, width, height, intensity)
	return dst, true
}

// AdjustHue rotates every pixel's hue by degrees. Any angle is accepted and
// wrapped into [0,360). Alpha is preserved.
func AdjustHue(pix []byte, width, height int, degrees float32) []byte {
	dst := make([]byte, len(pix))
	copy(dst, pix)
	eachPixel(dst, pix, numeric.Nearest, func(c formula.RGB) formula.RGB {
		return formula.Hue(c, degrees, formula.Byte)
	})
	return dst
}

func rgbAt(pix []byte, i int) formula.RGB {
	return formula.RGB{float32(pix[i]), float32(pix[i+1]), float32(pix[i+2])}
}

func putRGB(dst []byte, i int, c formula.RGB, rule numeric.Rounding) {
	dst[i] = numeric.Narrow(c[0], rule)
	dst[i+1] = numeric.Narrow(c[1], rule)
	dst[i+2] = numeric.Narrow(c[2], rule)
}
