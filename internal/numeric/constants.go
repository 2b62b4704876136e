package numeric

// Rec. 709 luminance weights.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Sepia is the standard sepia tone matrix, one row per output channel.
var Sepia = [3][3]float32{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// Sobel taps indexed [dy+1][dx+1].
var (
	SobelX = [3][3]float32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	SobelY = [3][3]float32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Byte-domain constants. Unit-domain kernels divide by MaxChannel.
const (
	MaxChannel = 255

	// MidGray is the contrast pivot.
	MidGray = 128

	// TemperatureShift is the red/blue offset of warm and cool at full intensity.
	TemperatureShift = 25

	// NoiseAmplitude is the peak-to-peak noise spread at full intensity.
	NoiseAmplitude = 50

	// VintageContrast pulls vintage's sepia tones toward MidGray.
	VintageContrast = 0.9

	// VignetteReach scales how far vignette darkening extends.
	VignetteReach = 1.5

	// Vintage radial falloff edges, in unit image coordinates.
	VintageFalloffInner = 0.4
	VintageFalloffOuter = 0.8
)

// SepiaTone applies the Sepia matrix.
func SepiaTone(r, g, b float32) (float32, float32, float32) {
	c := [3]float32{r, g, b}
	return Dot3(Sepia[0], c), Dot3(Sepia[1], c), Dot3(Sepia[2], c)
}
