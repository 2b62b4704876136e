package texel

import (
	"image"

	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/formula"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// Kernel computes destination texel (x,y) from src.
type Kernel func(src Image, x, y int, p Params) Texel

func point(fn func(c formula.RGB, t float32) formula.RGB) Kernel {
	return func(src Image, x, y int, p Params) Texel {
		c := src.At(x, y)
		return c.With(fn(c.RGB(), p.Intensity()))
	}
}

// scaled adapts a formula that takes a channel scale to the unit domain.
func scaled(fn func(c formula.RGB, t, scale float32) formula.RGB) Kernel {
	return point(func(c formula.RGB, t float32) formula.RGB {
		return fn(c, t, formula.Unit)
	})
}

var kernels = [...]Kernel{
	catalog.Grayscale:           point(formula.Grayscale),
	catalog.Sepia:               point(formula.Sepia),
	catalog.Invert:              scaled(formula.Invert),
	catalog.Brightness:          scaled(formula.Brightness),
	catalog.Contrast:            scaled(formula.Contrast),
	catalog.Saturation:          point(formula.Saturation),
	catalog.Blur:                blur,
	catalog.Sharpen:             sharpen,
	catalog.Vignette:            vignette,
	catalog.Vintage:             vintage,
	catalog.Warm:                scaled(formula.Warm),
	catalog.Cool:                scaled(formula.Cool),
	catalog.Posterize:           scaled(formula.Posterize),
	catalog.Emboss:              emboss,
	catalog.EdgeDetect:          edgeDetect,
	catalog.Noise:               noise,
	catalog.Pixelate:            pixelate,
	catalog.ChromaticAberration: chromaticAberration,
}

func hue(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	return c.With(formula.Hue(c.RGB(), p.Intensity(), formula.Unit))
}

func noise(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	return c.With(formula.Noise(c.RGB(), formula.NoiseSeed(x, y, src.Width), p.Intensity(), formula.Unit))
}

func blur(src Image, x, y int, p Params) Texel {
	r := formula.BlurRadius(p.Intensity())
	y0, y1 := max(0, y-r), min(src.Height-1, y+r)
	x0, x1 := max(0, x-r), min(src.Width-1, x+r)

	var sum formula.RGB
	for sy := y0; sy <= y1; sy++ {
		for sx := x0; sx <= x1; sx++ {
			s := src.At(sx, sy)
			sum[0] += s[0]
			sum[1] += s[1]
			sum[2] += s[2]
		}
	}
	n := float32((y1 - y0 + 1) * (x1 - x0 + 1))
	return src.At(x, y).With(formula.RGB{sum[0] / n, sum[1] / n, sum[2] / n})
}

func sharpen(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	if src.Border(x, y) {
		return c
	}
	top, bottom := src.At(x, y-1), src.At(x, y+1)
	left, right := src.At(x-1, y), src.At(x+1, y)
	var out formula.RGB
	for i := range out {
		out[i] = formula.Sharpen(c[i], top[i], bottom[i], left[i], right[i], p.Intensity())
	}
	return c.With(out)
}

func emboss(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	if src.Border(x, y) {
		return c
	}
	tl, br := src.At(x-1, y-1), src.At(x+1, y+1)
	var out formula.RGB
	for i := range out {
		out[i] = formula.Emboss(c[i], tl[i], br[i], p.Intensity(), formula.Unit)
	}
	return c.With(out)
}

func edgeDetect(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	if src.Border(x, y) {
		return c
	}
	var w [3][3]float32
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			w[dy+1][dx+1] = formula.Gray3(src.At(x+dx, y+dy).RGB())
		}
	}
	m := formula.SobelMagnitude(w)
	var out formula.RGB
	for i := range out {
		out[i] = formula.Edge(c[i], m, p.Intensity())
	}
	return c.With(out)
}

func pixelate(src Image, x, y int, p Params) Texel {
	size := formula.PixelateBlock(p.Intensity())
	bx, by := x/size*size, y/size*size
	x1, y1 := min(src.Width, bx+size), min(src.Height, by+size)

	var sum formula.RGB
	for sy := by; sy < y1; sy++ {
		for sx := bx; sx < x1; sx++ {
			s := src.At(sx, sy)
			sum[0] += s[0]
			sum[1] += s[1]
			sum[2] += s[2]
		}
	}
	n := float32((y1 - by) * (x1 - bx))
	return src.At(x, y).With(formula.RGB{sum[0] / n, sum[1] / n, sum[2] / n})
}

func vignette(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	d := formula.NewRadial(src.Width, src.Height).Factor(x, y)
	return c.With(formula.Vignette(c.RGB(), d, p.Intensity()))
}

func chromaticAberration(src Image, x, y int, p Params) Texel {
	d := formula.NewRadial(src.Width, src.Height).Factor(x, y)
	shift := formula.AberrationShift(d, formula.AberrationOffset(p.Intensity()))
	c := src.At(x, y)
	c[0] = src.At(x+shift, y)[0]
	c[2] = src.At(x-shift, y)[2]
	return c
}

func vintage(src Image, x, y int, p Params) Texel {
	c := src.At(x, y)
	u := float32(x) / float32(src.Width)
	v := float32(y) / float32(src.Height)
	return c.With(formula.Vintage(c.RGB(), u, v, p.Intensity(), formula.Unit))
}

// Program is one dispatchable kernel: its Go form, its WGSL form and the
// rounding rule used when storing its output.
type Program struct {
	Name   string
	Kernel Kernel
	Rule   numeric.Rounding
	Source string
}

// For returns the program for filter k.
func For(k catalog.Kind) (Program, bool) {
	if !k.Valid() || int(k) >= len(kernels) || kernels[k] == nil {
		return Program{}, false
	}
	src, err := Source(k)
	if err != nil {
		return Program{}, false
	}
	return Program{Name: k.String(), Kernel: kernels[k], Rule: k.Rounding(), Source: src}, true
}

// Hue returns the hue rotation program. Its intensity is the shift in degrees.
func Hue() Program {
	return Program{Name: HueName, Kernel: hue, Rule: numeric.Nearest, Source: HueSource()}
}

// Run evaluates prog over the whole image on the calling goroutine. It is the
// reference schedule; devices may split the same work any way they like.
func Run(prog Program, src Image, p Params) []uint32 {
	out := make([]uint32, len(src.Texels))
	RunRegion(prog, src, p, out, image.Rect(0, 0, src.Width, src.Height))
	return out
}

// RunRegion evaluates prog for the texels of r that lie inside src, writing
// them into dst. Texels outside r are left as they are.
func RunRegion(prog Program, src Image, p Params, dst []uint32, r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, src.Width, src.Height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst[y*src.Width+x] = Pack(prog.Kernel(src, x, y, p), prog.Rule)
		}
	}
}
