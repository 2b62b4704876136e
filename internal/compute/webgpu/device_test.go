//go:build !nogpu

package webgpu

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/compute"
	"github.com/ironsheep/image-filters-mcp/internal/filters"
	"github.com/ironsheep/image-filters-mcp/internal/texel"
)

// initRunner acquires the GPU or skips the test.
func initRunner(t *testing.T) *compute.Runner {
	t.Helper()

	dev, err := Acquire(context.Background())
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	r := compute.NewRunner(dev)
	t.Cleanup(r.Close)
	return r
}

func noisyImage(w, h int) []byte {
	rng := rand.New(rand.NewSource(42))
	pix := make([]byte, w*h*4)
	rng.Read(pix)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return pix
}

func TestDevice_EquivalentToSequential(t *testing.T) {
	r := initRunner(t)
	const w, h = 61, 37
	pix := noisyImage(w, h)

	for _, k := range catalog.Kinds() {
		prog, ok := texel.For(k)
		require.True(t, ok)
		t.Run(k.String(), func(t *testing.T) {
			for _, intensity := range []float32{0, 0.25, 0.5, 1} {
				want, _ := filters.Apply(k, pix, w, h, intensity)
				got, err := r.Run(context.Background(), prog, pix, w, h, intensity)
				require.NoError(t, err)
				require.Len(t, got, len(want))
				for i := range want {
					d := int(want[i]) - int(got[i])
					if d < -1 || d > 1 {
						t.Fatalf("intensity %v: byte %d = %d, want %d±1", intensity, i, got[i], want[i])
					}
				}
			}
		})
	}
}

func TestDevice_Release(t *testing.T) {
	dev, err := Acquire(context.Background())
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	assert.Equal(t, Name, dev.Name())
	dev.Release()
	dev.Release()

	_, err = dev.AllocateTexture(4, 4, compute.FormatRGBA8)
	assert.ErrorIs(t, err, compute.ErrReleased)
}
