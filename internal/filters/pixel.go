package filters

import (
	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/formula"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

func eachPixel(dst, src []byte, rule numeric.Rounding, fn func(formula.RGB) formula.RGB) {
	for i := 0; i+3 < len(src); i += 4 {
		putRGB(dst, i, fn(rgbAt(src, i)), rule)
	}
}

func grayscale(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Grayscale.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Grayscale(c, t)
	})
}

func sepia(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Sepia.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Sepia(c, t)
	})
}

func invert(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Invert.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Invert(c, t, formula.Byte)
	})
}

func brightness(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Brightness.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Brightness(c, t, formula.Byte)
	})
}

func contrast(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Contrast.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Contrast(c, t, formula.Byte)
	})
}

func saturation(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Saturation.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Saturation(c, t)
	})
}

func warm(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Warm.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Warm(c, t, formula.Byte)
	})
}

func cool(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Cool.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Cool(c, t, formula.Byte)
	})
}

func posterize(dst, src []byte, _, _ int, t float32) {
	eachPixel(dst, src, catalog.Posterize.Rounding(), func(c formula.RGB) formula.RGB {
		return formula.Posterize(c, t, formula.Byte)
	})
}

// Noise adds film grain. The grain for a pixel is seeded by its byte offset,
// so the output depends only on the image size, the pixel and intensity.
func Noise(dst, src []byte, width, height int, t float32) {
	rule := catalog.Noise.Rounding()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			c := formula.Noise(rgbAt(src, i), formula.NoiseSeed(x, y, width), t, formula.Byte)
			putRGB(dst, i, c, rule)
		}
	}
}
