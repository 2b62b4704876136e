package texel

import (
	"embed"
	"fmt"
	"strings"

	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

//go:embed wgsl/*.wgsl
var shaders embed.FS

// HueName identifies the hue rotation program.
const HueName = "hue"

// Binding layout shared by every WGSL kernel, group 0.
const (
	BindingParams = 0
	BindingSource = 1
	BindingDest   = 2
)

// WorkgroupSize is the edge of the square workgroup each kernel declares.
const WorkgroupSize = 8

// EntryPoint is the compute entry point of every kernel.
const EntryPoint = "main"

func shader(name string) string {
	b, err := shaders.ReadFile("wgsl/" + name + ".wgsl")
	if err != nil {
		panic(fmt.Sprintf("texel: missing embedded shader %s: %v", name, err))
	}
	return string(b)
}

func assemble(body string, rule numeric.Rounding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "const NEAREST: bool = %t;\n\n", rule == numeric.Nearest)
	sb.WriteString(shader("prelude"))
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(shader("entry"))
	return sb.String()
}

// Source returns the complete WGSL module for filter k.
func Source(k catalog.Kind) (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("no kernel for filter %d", int(k))
	}
	return assemble(shader(k.String()), k.Rounding()), nil
}

// HueSource returns the complete WGSL module for hue rotation.
func HueSource() string {
	return assemble(shader(HueName), numeric.Nearest)
}
