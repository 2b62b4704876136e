package filters

import (
	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/formula"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// Vignette darkens pixels in proportion to their distance from the center.
func Vignette(dst, src []byte, width, height int, t float32) {
	rule := catalog.Vignette.Rounding()
	rad := formula.NewRadial(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			putRGB(dst, i, formula.Vignette(rgbAt(src, i), rad.Factor(x, y), t), rule)
		}
	}
}

// ChromaticAberration pulls red from the right and blue from the left by a
// shift that grows toward the edges. Green and alpha stay in place.
func ChromaticAberration(dst, src []byte, width, height int, t float32) {
	rad := formula.NewRadial(width, height)
	off := formula.AberrationOffset(t)
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			shift := formula.AberrationShift(rad.Factor(x, y), off)
			rx := numeric.ClampInt(x+shift, 0, width-1)
			bx := numeric.ClampInt(x-shift, 0, width-1)

			i := (row + x) * 4
			dst[i] = src[(row+rx)*4]
			dst[i+2] = src[(row+bx)*4+2]
		}
	}
}

// Vintage is the sepia, contrast and corner-falloff preset.
func Vintage(dst, src []byte, width, height int, t float32) {
	rule := catalog.Vintage.Rounding()
	fw, fh := float32(width), float32(height)
	for y := 0; y < height; y++ {
		v := float32(y) / fh
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			c := formula.Vintage(rgbAt(src, i), float32(x)/fw, v, t, formula.Byte)
			putRGB(dst, i, c, rule)
		}
	}
}
