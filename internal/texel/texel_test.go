package texel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/filters"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

func testPixels(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i] = uint8(x*7 + y*3)
			pix[i+1] = uint8(x*x + y)
			pix[i+2] = uint8(255 - x*5)
			pix[i+3] = uint8(200 + (x+y)%56)
		}
	}
	return pix
}

func TestPackRoundTrip(t *testing.T) {
	pix := testPixels(9, 4)
	assert.Equal(t, pix, UnpackBytes(PackBytes(pix)))

	for _, w := range PackBytes(pix) {
		assert.Equal(t, w, Pack(Unpack(w), numeric.Truncate))
		assert.Equal(t, w, Pack(Unpack(w), numeric.Nearest))
	}
}

func TestImageAt_ClampsCoordinates(t *testing.T) {
	im := Image{Texels: PackBytes(testPixels(3, 2)), Width: 3, Height: 2}
	assert.Equal(t, im.At(0, 0), im.At(-5, -1))
	assert.Equal(t, im.At(2, 1), im.At(10, 7))
	assert.True(t, im.Border(0, 1))
	assert.False(t, Image{Width: 3, Height: 3}.Border(1, 1))
}

func TestFor_EveryKind(t *testing.T) {
	for _, k := range catalog.Kinds() {
		prog, ok := For(k)
		require.True(t, ok, "no program for %v", k)
		assert.Equal(t, k.String(), prog.Name)
		assert.Equal(t, k.Rounding(), prog.Rule)
		assert.NotNil(t, prog.Kernel)
	}
	_, ok := For(catalog.Kind(-1))
	assert.False(t, ok)
}

func TestSources_ContainExpectedContent(t *testing.T) {
	required := []string{
		"@compute",
		"@workgroup_size(8, 8, 1)",
		"fn main(",
		"fn texel(",
		"var<uniform> params: Params",
		"@binding(1) var<storage, read> src",
		"@binding(2) var<storage, read_write> dst",
		"const NEAREST: bool",
		"0.2126, 0.7152, 0.0722",
	}
	sources := map[string]string{HueName: HueSource()}
	for _, k := range catalog.Kinds() {
		src, err := Source(k)
		require.NoError(t, err)
		sources[k.String()] = src
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for _, req := range required {
				if !strings.Contains(src, req) {
					t.Errorf("%s kernel missing %q", name, req)
				}
			}
			if strings.Count(src, "fn texel(") != 1 {
				t.Errorf("%s kernel defines texel more than once", name)
			}
		})
	}
}

func TestSources_RoundingRule(t *testing.T) {
	src, err := Source(catalog.Posterize)
	require.NoError(t, err)
	assert.Contains(t, src, "const NEAREST: bool = true;")

	src, err = Source(catalog.Blur)
	require.NoError(t, err)
	assert.Contains(t, src, "const NEAREST: bool = false;")

	assert.Contains(t, HueSource(), "const NEAREST: bool = true;")
}

func TestRun_MatchesSequential(t *testing.T) {
	const w, h = 23, 17
	pix := testPixels(w, h)
	im := Image{Texels: PackBytes(pix), Width: w, Height: h}

	for _, k := range catalog.Kinds() {
		prog, ok := For(k)
		require.True(t, ok)
		for _, intensity := range []float32{0, 0.3, 0.5, 1} {
			want, ok := filters.Apply(k, pix, w, h, intensity)
			require.True(t, ok)
			got := UnpackBytes(Run(prog, im, NewParams(intensity, w, h)))
			assertWithinOne(t, want, got, "%v at %v", k, intensity)
		}
	}
}

func TestHue_MatchesSequential(t *testing.T) {
	const w, h = 16, 16
	pix := testPixels(w, h)
	im := Image{Texels: PackBytes(pix), Width: w, Height: h}

	for _, deg := range []float32{-90, 0, 45, 180, 400} {
		want := filters.AdjustHue(pix, w, h, deg)
		got := UnpackBytes(Run(Hue(), im, NewParams(deg, w, h)))
		assertWithinOne(t, want, got, "hue %v", deg)
	}
}

func assertWithinOne(t *testing.T, want, got []byte, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		d := int(want[i]) - int(got[i])
		if d < -1 || d > 1 {
			assert.Failf(t, "channel differs by more than one",
				"byte %d: sequential %d, texel %d (%v)", i, want[i], got[i], msgAndArgs)
			return
		}
	}
}
