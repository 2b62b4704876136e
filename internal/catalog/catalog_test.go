package catalog

import (
	"testing"

	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

func TestKindRoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range Kinds() {
		name := k.String()
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true

		got, ok := ParseKind(name)
		if !ok {
			t.Errorf("ParseKind(%q) not found", name)
			continue
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", name, got, k)
		}
	}
	if len(seen) != 18 {
		t.Errorf("catalog has %d kinds, want 18", len(seen))
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, name := range []string{"", "Grayscale", "edge-detect", "gaussian", "unknown", " sepia"} {
		if _, ok := ParseKind(name); ok {
			t.Errorf("ParseKind(%q) should not be found", name)
		}
	}
}

func TestKind_String_Invalid(t *testing.T) {
	if got := Kind(-1).String(); got != "unknown" {
		t.Errorf("Kind(-1).String() = %q", got)
	}
	if got := numKinds.String(); got != "unknown" {
		t.Errorf("numKinds.String() = %q", got)
	}
}

func TestCanonicalNames(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
	}{
		{EdgeDetect, "edge_detect"},
		{ChromaticAberration, "chromatic_aberration"},
		{Grayscale, "grayscale"},
		{Pixelate, "pixelate"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.name)
		}
	}
}

func TestLookup(t *testing.T) {
	m, ok := Lookup("edge_detect")
	if !ok {
		t.Fatal("Lookup(edge_detect) not found")
	}
	if m.Name != "Edge Detect" || m.Category != CategoryArtistic {
		t.Errorf("edge_detect metadata = %+v", m)
	}
	if m.MinIntensity != 0 || m.MaxIntensity != 1 {
		t.Errorf("intensity range = [%v,%v], want [0,1]", m.MinIntensity, m.MaxIntensity)
	}

	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should not be found")
	}
}

func TestMetadata_DefaultsInRange(t *testing.T) {
	for _, k := range Kinds() {
		m, ok := k.Metadata()
		if !ok {
			t.Fatalf("%v has no metadata", k)
		}
		if m.DefaultIntensity < m.MinIntensity || m.DefaultIntensity > m.MaxIntensity {
			t.Errorf("%v default %v outside [%v,%v]", k, m.DefaultIntensity, m.MinIntensity, m.MaxIntensity)
		}
		if m.Description == "" {
			t.Errorf("%v has no description", k)
		}
	}
}

func TestListByCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     []string
	}{
		{CategoryColor, []string{"grayscale", "sepia", "invert", "warm", "cool"}},
		{CategoryAdjustment, []string{"brightness", "contrast", "saturation"}},
		{CategoryEffect, []string{"blur", "sharpen", "vignette", "noise", "chromatic_aberration"}},
		{CategoryArtistic, []string{"posterize", "emboss", "edge_detect", "pixelate"}},
		{CategoryPreset, []string{"vintage"}},
		{"bogus", nil},
	}

	total := 0
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := ListByCategory(tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
		total += len(tt.want)
	}
	if total != len(ListAll()) {
		t.Errorf("categories cover %d filters, want %d", total, len(ListAll()))
	}
}

func TestListCategories(t *testing.T) {
	got := ListCategories()
	want := []string{"color", "adjustment", "effect", "artistic", "preset"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRounding(t *testing.T) {
	if Posterize.Rounding() != numeric.Nearest {
		t.Error("posterize should round to nearest")
	}
	if Grayscale.Rounding() != numeric.Truncate {
		t.Error("grayscale should truncate")
	}
}
