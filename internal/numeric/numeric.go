// Package numeric holds the scalar math shared by every filter backend.
//
// All functions are pure and operate on float32, the precision both the
// sequential loops and the per-texel kernels compute in. Constants used by
// more than one backend (luminance weights, the sepia matrix, Sobel taps)
// live here so the two backends cannot drift apart.
package numeric

import "github.com/chewxy/math32"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep is the Hermite step between edge0 and edge1.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * math32.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * 180 / math32.Pi
}

// Distance is the euclidean distance between (x1,y1) and (x2,y2).
func Distance(x1, y1, x2, y2 float32) float32 {
	dx := x2 - x1
	dy := y2 - y1
	return math32.Sqrt(dx*dx + dy*dy)
}

// Normalize returns the unit vector of (x,y), or (0,0) for the zero vector.
func Normalize(x, y float32) (float32, float32) {
	l := math32.Sqrt(x*x + y*y)
	if l > 0 {
		return x / l, y / l
	}
	return 0, 0
}

// Dot3 is the dot product of two 3-vectors.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Luminance is the Rec. 709 relative luminance. It is scale invariant, so it
// works on both byte-domain and unit-domain channels.
func Luminance(r, g, b float32) float32 {
	return LumaR*r + LumaG*g + LumaB*b
}

// PseudoRandom maps a seed to [0,1] with one linear-congruential step.
// The multiplication wraps at 32 bits.
func PseudoRandom(seed uint32) float32 {
	x := seed*1103515245 + 12345
	return float32((x>>16)&0x7fff) / float32(0x7fff)
}
