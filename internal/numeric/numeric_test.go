package numeric

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{255.7, 0, 255, 255},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := ClampInt(-3, 0, 7); got != 0 {
		t.Errorf("ClampInt(-3, 0, 7) = %d, want 0", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0,10,0.5) = %v, want 5", got)
	}
	if got := Lerp(0, 10, 0); got != 0 {
		t.Errorf("Lerp(0,10,0) = %v, want 0", got)
	}
	if got := Lerp(0, 10, 1); got != 10 {
		t.Errorf("Lerp(0,10,1) = %v, want 10", got)
	}
	// t is not clamped
	if got := Lerp(0, 10, 2); got != 20 {
		t.Errorf("Lerp(0,10,2) = %v, want 20", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0.4, 0.8, 0.2); got != 0 {
		t.Errorf("below edge0: got %v, want 0", got)
	}
	if got := Smoothstep(0.4, 0.8, 0.9); got != 1 {
		t.Errorf("above edge1: got %v, want 1", got)
	}
	if got := Smoothstep(0, 1, 0.5); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("midpoint: got %v, want 0.5", got)
	}
}

func TestAngles(t *testing.T) {
	if got := DegToRad(180); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("DegToRad(180) = %v", got)
	}
	if got := RadToDeg(DegToRad(37)); math.Abs(float64(got)-37) > 1e-4 {
		t.Errorf("round trip = %v, want 37", got)
	}
}

func TestDistanceNormalize(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	x, y := Normalize(3, 4)
	if math.Abs(float64(x)-0.6) > 1e-6 || math.Abs(float64(y)-0.8) > 1e-6 {
		t.Errorf("Normalize(3,4) = (%v,%v)", x, y)
	}
	x, y = Normalize(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("Normalize(0,0) = (%v,%v), want (0,0)", x, y)
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(1, 1, 1); math.Abs(float64(got)-1) > 1e-3 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if got := Luminance(0, 0, 0); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
	if got := ToByte(Luminance(255, 0, 0)); got != 54 {
		t.Errorf("Luminance(red) byte = %d, want 54", got)
	}
}

func TestPseudoRandom(t *testing.T) {
	for seed := uint32(0); seed < 4096; seed += 4 {
		v := PseudoRandom(seed)
		if v < 0 || v > 1 {
			t.Fatalf("PseudoRandom(%d) = %v outside [0,1]", seed, v)
		}
		if v != PseudoRandom(seed) {
			t.Fatalf("PseudoRandom(%d) is not deterministic", seed)
		}
	}
	// seed 0: (12345 >> 16) & 0x7fff == 0
	if got := PseudoRandom(0); got != 0 {
		t.Errorf("PseudoRandom(0) = %v, want 0", got)
	}
}

func TestNarrow(t *testing.T) {
	tests := []struct {
		v    float32
		rule Rounding
		want uint8
	}{
		{54.9, Truncate, 54},
		{54.9, Nearest, 55},
		{54.5, Nearest, 55},
		{-3, Truncate, 0},
		{-3, Nearest, 0},
		{300, Truncate, 255},
		{255.4, Nearest, 255},
	}
	for _, tt := range tests {
		if got := Narrow(tt.v, tt.rule); got != tt.want {
			t.Errorf("Narrow(%v, %v) = %d, want %d", tt.v, tt.rule, got, tt.want)
		}
	}
}

func TestRequantize(t *testing.T) {
	for b := 0; b <= 255; b++ {
		u := Unit(uint8(b))
		if got := Denormalize(Requantize(u, Truncate)); got != uint8(b) {
			t.Fatalf("truncate grid point %d moved to %d", b, got)
		}
		if got := Denormalize(Requantize(u, Nearest)); got != uint8(b) {
			t.Fatalf("nearest grid point %d moved to %d", b, got)
		}
	}
	if got := Denormalize(Requantize(54.9/255, Truncate)); got != 54 {
		t.Errorf("truncate 54.9 = %d, want 54", got)
	}
	if got := Denormalize(Requantize(54.9/255, Nearest)); got != 55 {
		t.Errorf("nearest 54.9 = %d, want 55", got)
	}
}

func TestRGBToHSL_Achromatic(t *testing.T) {
	h, s, l := RGBToHSL(0.5, 0.5, 0.5)
	if h != 0 || s != 0 || l != 0.5 {
		t.Errorf("gray: got (%v,%v,%v), want (0,0,0.5)", h, s, l)
	}
}

func TestRGBToHSL_MatchesColorful(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 51 {
				rf, gf, bf := Unit(uint8(r)), Unit(uint8(g)), Unit(uint8(b))
				h, s, l := RGBToHSL(rf, gf, bf)

				ref := colorful.Color{R: float64(rf), G: float64(gf), B: float64(bf)}
				wh, ws, wl := ref.Hsl()
				if s == 0 {
					continue // hue undefined
				}
				if math.Abs(float64(h)-wh) > 1e-2 || math.Abs(float64(s)-ws) > 1e-3 || math.Abs(float64(l)-wl) > 1e-3 {
					t.Fatalf("RGB(%d,%d,%d): got (%v,%v,%v), want (%v,%v,%v)", r, g, b, h, s, l, wh, ws, wl)
				}
			}
		}
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 7 {
			for b := 0; b < 256; b += 11 {
				h, s, l := RGBToHSL(Unit(uint8(r)), Unit(uint8(g)), Unit(uint8(b)))
				rf, gf, bf := HSLToRGB(h, s, l)
				if Denormalize(rf) != uint8(r) || Denormalize(gf) != uint8(g) || Denormalize(bf) != uint8(b) {
					t.Fatalf("RGB(%d,%d,%d) round trip = (%d,%d,%d)", r, g, b,
						Denormalize(rf), Denormalize(gf), Denormalize(bf))
				}
			}
		}
	}
}

func TestShiftHue(t *testing.T) {
	// red shifted by 120 degrees is green
	r, g, b := ShiftHue(1, 0, 0, 120)
	if Denormalize(r) != 0 || Denormalize(g) != 255 || Denormalize(b) != 0 {
		t.Errorf("red+120 = (%v,%v,%v), want green", r, g, b)
	}

	ref := colorful.Hsl(240, 1, 0.5)
	r, g, b = ShiftHue(1, 0, 0, -120)
	if math.Abs(float64(r)-ref.R) > 1e-4 || math.Abs(float64(g)-ref.G) > 1e-4 || math.Abs(float64(b)-ref.B) > 1e-4 {
		t.Errorf("red-120 = (%v,%v,%v), want %v", r, g, b, ref)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-725, 355},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSepiaTone(t *testing.T) {
	r, g, b := SepiaTone(100, 100, 100)
	if ToByte(r) != 135 || ToByte(g) != 120 || ToByte(b) != 93 {
		t.Errorf("SepiaTone(100) = (%v,%v,%v)", r, g, b)
	}
}
