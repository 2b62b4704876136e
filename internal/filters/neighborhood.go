package filters

import (
	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/formula"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// Blur averages R, G and B over a square window of half-width
// formula.BlurRadius(t). The window is clipped at the image edges and the
// divisor shrinks with it. Alpha is untouched.
func Blur(dst, src []byte, width, height int, t float32) {
	r := formula.BlurRadius(t)
	rule := catalog.Blur.Rounding()
	for y := 0; y < height; y++ {
		y0, y1 := max(0, y-r), min(height-1, y+r)
		for x := 0; x < width; x++ {
			x0, x1 := max(0, x-r), min(width-1, x+r)

			// Integer sums are exact; a float32 running sum is not.
			var sum [3]uint32
			for sy := y0; sy <= y1; sy++ {
				row := sy * width
				for sx := x0; sx <= x1; sx++ {
					j := (row + sx) * 4
					sum[0] += uint32(src[j])
					sum[1] += uint32(src[j+1])
					sum[2] += uint32(src[j+2])
				}
			}
			n := float32((y1 - y0 + 1) * (x1 - x0 + 1))
			c := formula.RGB{float32(sum[0]) / n, float32(sum[1]) / n, float32(sum[2]) / n}
			putRGB(dst, (y*width+x)*4, c, rule)
		}
	}
}

// interior calls fn for every pixel that has all 8 neighbors. Border pixels
// keep their source values.
func interior(width, height int, fn func(x, y, i int)) {
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			fn(x, y, (y*width+x)*4)
		}
	}
}

// Sharpen applies a 4-neighbor unsharp mask to the interior.
func Sharpen(dst, src []byte, width, height int, t float32) {
	rule := catalog.Sharpen.Rounding()
	stride := width * 4
	interior(width, height, func(_, _, i int) {
		for c := 0; c < 3; c++ {
			v := formula.Sharpen(
				float32(src[i+c]),
				float32(src[i-stride+c]),
				float32(src[i+stride+c]),
				float32(src[i-4+c]),
				float32(src[i+4+c]),
				t,
			)
			dst[i+c] = numeric.Narrow(v, rule)
		}
	})
}

// Emboss relieves the interior along the top-left to bottom-right diagonal.
func Emboss(dst, src []byte, width, height int, t float32) {
	rule := catalog.Emboss.Rounding()
	stride := width * 4
	interior(width, height, func(_, _, i int) {
		tl := i - stride - 4
		br := i + stride + 4
		for c := 0; c < 3; c++ {
			v := formula.Emboss(float32(src[i+c]), float32(src[tl+c]), float32(src[br+c]), t, formula.Byte)
			dst[i+c] = numeric.Narrow(v, rule)
		}
	})
}

// EdgeDetect blends the interior toward its Sobel gradient magnitude, taken
// over the plain (r+g+b)/3 average of each neighbor.
func EdgeDetect(dst, src []byte, width, height int, t float32) {
	rule := catalog.EdgeDetect.Rounding()
	interior(width, height, func(x, y, i int) {
		var w [3][3]float32
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				j := ((y+dy)*width + (x + dx)) * 4
				w[dy+1][dx+1] = formula.Gray3(rgbAt(src, j))
			}
		}
		m := formula.SobelMagnitude(w)
		for c := 0; c < 3; c++ {
			dst[i+c] = numeric.Narrow(formula.Edge(float32(src[i+c]), m, t), rule)
		}
	})
}

// Pixelate replaces each block of formula.PixelateBlock(t) pixels with the
// block's integer-truncated mean color. Blocks are clipped at the right and
// bottom edges. Alpha is untouched.
func Pixelate(dst, src []byte, width, height int, t float32) {
	size := formula.PixelateBlock(t)
	for by := 0; by < height; by += size {
		y1 := min(height, by+size)
		for bx := 0; bx < width; bx += size {
			x1 := min(width, bx+size)

			var sum [3]uint32
			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					j := (y*width + x) * 4
					sum[0] += uint32(src[j])
					sum[1] += uint32(src[j+1])
					sum[2] += uint32(src[j+2])
				}
			}
			n := uint32((y1 - by) * (x1 - bx))
			mean := [3]uint8{uint8(sum[0] / n), uint8(sum[1] / n), uint8(sum[2] / n)}

			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					j := (y*width + x) * 4
					dst[j], dst[j+1], dst[j+2] = mean[0], mean[1], mean[2]
				}
			}
		}
	}
}
