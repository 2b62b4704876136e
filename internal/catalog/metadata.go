package catalog

// Category groups filters for display.
type Category string

const (
	CategoryColor      Category = "color"
	CategoryAdjustment Category = "adjustment"
	CategoryEffect     Category = "effect"
	CategoryArtistic   Category = "artistic"
	CategoryPreset     Category = "preset"
)

var categories = []Category{
	CategoryColor,
	CategoryAdjustment,
	CategoryEffect,
	CategoryArtistic,
	CategoryPreset,
}

// Metadata describes one filter for hosts.
type Metadata struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         Category `json:"category"`
	DefaultIntensity float32  `json:"default_intensity"`
	MinIntensity     float32  `json:"min_intensity"`
	MaxIntensity     float32  `json:"max_intensity"`
}

func meta(name, description string, c Category, def float32) Metadata {
	return Metadata{
		Name:             name,
		Description:      description,
		Category:         c,
		DefaultIntensity: def,
		MinIntensity:     MinIntensity,
		MaxIntensity:     MaxIntensity,
	}
}

var metadata = [numKinds]Metadata{
	Grayscale:           meta("Grayscale", "Convert image to black and white", CategoryColor, 1.0),
	Sepia:               meta("Sepia", "Apply warm brownish tone", CategoryColor, 1.0),
	Invert:              meta("Invert", "Invert all colors", CategoryColor, 1.0),
	Brightness:          meta("Brightness", "Adjust image brightness", CategoryAdjustment, 0.5),
	Contrast:            meta("Contrast", "Adjust image contrast", CategoryAdjustment, 0.5),
	Saturation:          meta("Saturation", "Adjust color saturation", CategoryAdjustment, 0.5),
	Blur:                meta("Blur", "Soften the image with a box blur", CategoryEffect, 0.3),
	Sharpen:             meta("Sharpen", "Enhance edge details", CategoryEffect, 0.5),
	Vignette:            meta("Vignette", "Darken image edges", CategoryEffect, 0.5),
	Vintage:             meta("Vintage", "Apply retro film look", CategoryPreset, 1.0),
	Warm:                meta("Warm", "Add warm orange tones", CategoryColor, 0.5),
	Cool:                meta("Cool", "Add cool blue tones", CategoryColor, 0.5),
	Posterize:           meta("Posterize", "Reduce color levels", CategoryArtistic, 0.5),
	Emboss:              meta("Emboss", "Create raised surface effect", CategoryArtistic, 0.5),
	EdgeDetect:          meta("Edge Detect", "Highlight edges in image", CategoryArtistic, 0.5),
	Noise:               meta("Noise", "Add film grain effect", CategoryEffect, 0.3),
	Pixelate:            meta("Pixelate", "Create pixel art effect", CategoryArtistic, 0.3),
	ChromaticAberration: meta("Chromatic Aberration", "Add color fringing effect", CategoryEffect, 0.3),
}

// Metadata returns the display record for k.
func (k Kind) Metadata() (Metadata, bool) {
	if !k.Valid() {
		return Metadata{}, false
	}
	return metadata[k], true
}

// Category returns the group k is listed under.
func (k Kind) Category() Category {
	if !k.Valid() {
		return ""
	}
	return metadata[k].Category
}

// Lookup finds metadata by canonical filter name.
func Lookup(name string) (Metadata, bool) {
	k, ok := ParseKind(name)
	if !ok {
		return Metadata{}, false
	}
	return k.Metadata()
}

// ListByCategory returns the names of every filter in c, in declaration order.
// An unknown category yields an empty list.
func ListByCategory(c Category) []string {
	var names []string
	for k := Kind(0); k < numKinds; k++ {
		if metadata[k].Category == c {
			names = append(names, k.String())
		}
	}
	return names
}

// ListCategories returns every category in display order.
func ListCategories() []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

// ListAll returns every filter name in declaration order.
func ListAll() []string {
	out := make([]string, numKinds)
	for k := range out {
		out[k] = kindNames[k]
	}
	return out
}
