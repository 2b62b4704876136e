// Package catalog enumerates the filters the engine knows and the metadata
// hosts display for them.
//
// The set of kinds is closed. Every Kind has exactly one canonical
// snake_case name and ParseKind inverts String over the whole set; any other
// string reports ok == false. The metadata table is immutable and safe to
// share between goroutines without locking.
package catalog

import "github.com/ironsheep/image-filters-mcp/internal/numeric"

// Kind identifies one filter.
type Kind int

const (
	Grayscale Kind = iota
	Sepia
	Invert
	Brightness
	Contrast
	Saturation
	Blur
	Sharpen
	Vignette
	Vintage
	Warm
	Cool
	Posterize
	Emboss
	EdgeDetect
	Noise
	Pixelate
	ChromaticAberration

	numKinds
)

// Intensity domain shared by every filter.
const (
	MinIntensity float32 = 0
	MaxIntensity float32 = 1
)

var kindNames = [numKinds]string{
	Grayscale:           "grayscale",
	Sepia:               "sepia",
	Invert:              "invert",
	Brightness:          "brightness",
	Contrast:            "contrast",
	Saturation:          "saturation",
	Blur:                "blur",
	Sharpen:             "sharpen",
	Vignette:            "vignette",
	Vintage:             "vintage",
	Warm:                "warm",
	Cool:                "cool",
	Posterize:           "posterize",
	Emboss:              "emboss",
	EdgeDetect:          "edge_detect",
	Noise:               "noise",
	Pixelate:            "pixelate",
	ChromaticAberration: "chromatic_aberration",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// String returns the canonical name, or "unknown" for values outside the set.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the catalogued kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// ParseKind maps a canonical name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Rounding is the rule used to narrow k's computed channels to bytes.
// Both backends apply the same rule.
func (k Kind) Rounding() numeric.Rounding {
	if k == Posterize {
		return numeric.Nearest
	}
	return numeric.Truncate
}

// BlendsFromOriginal reports whether k is defined as
// lerp(original, target, intensity), which makes intensity 0 an identity.
func (k Kind) BlendsFromOriginal() bool {
	switch k {
	case Grayscale, Sepia, Invert, Emboss, EdgeDetect, Vintage:
		return true
	}
	return false
}
