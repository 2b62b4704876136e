package numeric

import "math"

// RGBToHSL converts unit-domain RGB to hue in degrees [0,360) and
// saturation/lightness in [0,1]. Achromatic input has hue 0 and saturation 0.
func RGBToHSL(r, g, b float32) (h, s, l float32) {
	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2

	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

// HSLToRGB is the inverse of RGBToHSL.
func HSLToRGB(h, s, l float32) (r, g, b float32) {
	if s == 0 {
		return l, l, l
	}

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	h /= 360
	return hueToChannel(p, q, h+1.0/3), hueToChannel(p, q, h), hueToChannel(p, q, h-1.0/3)
}

func hueToChannel(p, q, t float32) float32 {
	if t < 0 {
		t++
	} else if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// WrapDegrees folds any angle into [0,360).
func WrapDegrees(deg float32) float32 {
	deg = float32(math.Mod(float64(deg), 360))
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// ShiftHue rotates the hue of a unit-domain RGB color by shift degrees.
func ShiftHue(r, g, b, shift float32) (float32, float32, float32) {
	h, s, l := RGBToHSL(r, g, b)
	return HSLToRGB(WrapDegrees(h+shift), s, l)
}
