// Package transform implements the geometric operations: crop, bilinear
// resize, arbitrary-angle rotation and flips.
//
// Like package filters, every function reads a row-major RGBA source and
// returns a new buffer. Unlike filters, the output dimensions may differ from
// the input; Rotate reports them in its result.
package transform

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// ErrRegion reports a crop rectangle that does not lie inside the source.
var ErrRegion = errors.New("region outside image bounds")

// Crop copies the w x h rectangle at (x,y). The rectangle must lie entirely
// inside the width x height source; otherwise Crop returns ErrRegion.
func Crop(pix []byte, width, height, x, y, w, h int) ([]byte, error) {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > width || y+h > height {
		return nil, fmt.Errorf("crop (%d,%d) %dx%d from %dx%d: %w", x, y, w, h, width, height, ErrRegion)
	}

	out := make([]byte, w*h*4)
	rowBytes := w * 4
	for row := 0; row < h; row++ {
		start := ((y+row)*width + x) * 4
		copy(out[row*rowBytes:(row+1)*rowBytes], pix[start:start+rowBytes])
	}
	return out, nil
}

// Resize resamples to dstW x dstH with bilinear interpolation over all four
// channels, rounding to nearest. A source with no pixels yields a
// transparent result.
func Resize(pix []byte, width, height, dstW, dstH int) []byte {
	out := make([]byte, max(0, dstW*dstH*4))
	if width <= 0 || height <= 0 || dstW <= 0 || dstH <= 0 {
		return out
	}

	xRatio := float32(width) / float32(dstW)
	yRatio := float32(height) / float32(dstH)

	for y := 0; y < dstH; y++ {
		sy := float32(y) * yRatio
		y0 := min(int(math32.Floor(sy)), height-1)
		y1 := min(y0+1, height-1)
		fy := sy - float32(y0)

		for x := 0; x < dstW; x++ {
			sx := float32(x) * xRatio
			x0 := min(int(math32.Floor(sx)), width-1)
			x1 := min(x0+1, width-1)
			fx := sx - float32(x0)

			i00 := (y0*width + x0) * 4
			i10 := (y0*width + x1) * 4
			i01 := (y1*width + x0) * 4
			i11 := (y1*width + x1) * 4
			d := (y*dstW + x) * 4
			for c := 0; c < 4; c++ {
				v := float32(pix[i00+c])*(1-fx)*(1-fy) +
					float32(pix[i10+c])*fx*(1-fy) +
					float32(pix[i01+c])*(1-fx)*fy +
					float32(pix[i11+c])*fx*fy
				out[d+c] = numeric.RoundByte(v)
			}
		}
	}
	return out
}

// Rotated is a rotation result; the canvas grows to hold the rotated bounds.
type Rotated struct {
	Pix    []byte
	Width  int
	Height int
}

// snapEpsilon zeroes sine and cosine magnitudes that are float noise around
// a right angle.
const snapEpsilon = 1e-6

func snap(v float32) float32 {
	if math32.Abs(v) < snapEpsilon {
		return 0
	}
	return v
}

// Rotate turns the image clockwise by degrees about its center using
// nearest-neighbor inverse mapping of pixel centers, so right-angle turns
// are exact permutations. Destination pixels whose source falls outside the
// image are transparent black. Non-finite angles rotate by 0.
func Rotate(pix []byte, width, height int, degrees float32) Rotated {
	if math32.IsNaN(degrees) || math32.IsInf(degrees, 0) {
		degrees = 0
	}
	rad := numeric.DegToRad(degrees)
	cos := snap(math32.Cos(rad))
	sin := snap(math32.Sin(rad))

	fw, fh := float32(width), float32(height)
	newW := int(math32.Ceil(fw*math32.Abs(cos) + fh*math32.Abs(sin)))
	newH := int(math32.Ceil(fw*math32.Abs(sin) + fh*math32.Abs(cos)))
	out := make([]byte, newW*newH*4)

	cx, cy := fw/2, fh/2
	ncx, ncy := float32(newW)/2, float32(newH)/2

	for y := 0; y < newH; y++ {
		dy := float32(y) + 0.5 - ncy
		for x := 0; x < newW; x++ {
			dx := float32(x) + 0.5 - ncx
			sx := int(math32.Floor(dx*cos + dy*sin + cx))
			sy := int(math32.Floor(-dx*sin + dy*cos + cy))
			if sx < 0 || sx >= width || sy < 0 || sy >= height {
				continue
			}
			s := (sy*width + sx) * 4
			d := (y*newW + x) * 4
			copy(out[d:d+4], pix[s:s+4])
		}
	}
	return Rotated{Pix: out, Width: newW, Height: newH}
}

// Axis selects the mirror direction.
type Axis int

const (
	// Horizontal mirrors left to right.
	Horizontal Axis = iota
	// Vertical mirrors top to bottom.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseAxis accepts "horizontal" or "vertical".
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "horizontal":
		return Horizontal, true
	case "vertical":
		return Vertical, true
	}
	return 0, false
}

// Flip mirrors the image along axis. Flipping twice restores the source.
func Flip(pix []byte, width, height int, axis Axis) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx, sy := x, y
			if axis == Horizontal {
				sx = width - 1 - x
			} else {
				sy = height - 1 - y
			}
			s := (sy*width + sx) * 4
			d := (y*width + x) * 4
			copy(out[d:d+4], pix[s:s+4])
		}
	}
	return out
}
