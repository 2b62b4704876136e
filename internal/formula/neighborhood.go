package formula

import (
	"github.com/chewxy/math32"

	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// BlurRadius is the box half-width; the window is (2r+1)^2 before clipping.
func BlurRadius(t float32) int {
	return max(0, int(math32.Floor(t*10))+1)
}

// PixelateBlock is the edge length of one pixelate block.
func PixelateBlock(t float32) int {
	return max(1, int(math32.Floor(t*20))+1)
}

// Sharpen is the 4-neighbor unsharp mask for one channel.
func Sharpen(center, top, bottom, left, right, t float32) float32 {
	f := t * 2
	return center*(1+4*f) - (top+bottom+left+right)*f
}

// Emboss is the diagonal relief for one channel, blended from orig by t.
func Emboss(orig, topLeft, bottomRight, t, scale float32) float32 {
	e := (bottomRight-topLeft)*t + pivot(scale)
	return numeric.Lerp(orig, e, t)
}

// Gray3 is the plain average used by edge detection.
func Gray3(c RGB) float32 {
	return (c[0] + c[1] + c[2]) / 3
}

// SobelMagnitude is the gradient magnitude of a 3x3 gray window indexed [dy+1][dx+1].
func SobelMagnitude(w [3][3]float32) float32 {
	var gx, gy float32
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			gx += w[j][i] * numeric.SobelX[j][i]
			gy += w[j][i] * numeric.SobelY[j][i]
		}
	}
	return math32.Sqrt(gx*gx + gy*gy)
}

// Edge blends one channel toward the gradient magnitude.
func Edge(orig, magnitude, t float32) float32 {
	return numeric.Lerp(orig, magnitude, t)
}
