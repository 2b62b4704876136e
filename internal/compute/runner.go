package compute

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ironsheep/image-filters-mcp/internal/texel"
)

// paramsSize is the byte size of the uniform block: four float32.
const paramsSize = 16

// EncodeParams lays p out as the little-endian uniform block.
func EncodeParams(p texel.Params) []byte {
	b := make([]byte, paramsSize)
	for i, v := range p {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// DecodeParams is the inverse of EncodeParams.
func DecodeParams(b []byte) (texel.Params, error) {
	var p texel.Params
	if len(b) < paramsSize {
		return p, fmt.Errorf("params block of %d bytes, want %d", len(b), paramsSize)
	}
	for i := range p {
		p[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return p, nil
}

// Runner applies programs through a Device, compiling each program once.
// A Runner is safe for concurrent use.
type Runner struct {
	dev Device

	mu      sync.Mutex
	kernels map[string]Kernel
}

// NewRunner wraps dev.
func NewRunner(dev Device) *Runner {
	return &Runner{dev: dev, kernels: make(map[string]Kernel)}
}

// Device returns the wrapped device.
func (r *Runner) Device() Device { return r.dev }

func (r *Runner) kernel(prog texel.Program) (Kernel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if k, ok := r.kernels[prog.Name]; ok {
		return k, nil
	}
	k, err := r.dev.CompileKernel(prog)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", prog.Name, err)
	}
	r.kernels[prog.Name] = k
	return k, nil
}

// Run applies prog to a width x height RGBA buffer and returns the result.
// The source buffer is not modified.
func (r *Runner) Run(ctx context.Context, prog texel.Program, pix []byte, width, height int, intensity float32) ([]byte, error) {
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("buffer of %d bytes for %dx%d image", len(pix), width, height)
	}
	if width == 0 || height == 0 {
		return []byte{}, nil
	}

	k, err := r.kernel(prog)
	if err != nil {
		return nil, err
	}

	params, err := r.dev.AllocateBuffer(paramsSize, UsageUniform|UsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("params buffer: %w", err)
	}
	defer params.Release()

	src, err := r.dev.AllocateTexture(width, height, FormatRGBA8)
	if err != nil {
		return nil, fmt.Errorf("source texture: %w", err)
	}
	defer src.Release()

	dst, err := r.dev.AllocateTexture(width, height, FormatRGBA8)
	if err != nil {
		return nil, fmt.Errorf("destination texture: %w", err)
	}
	defer dst.Release()

	if err := r.dev.WriteBuffer(params, EncodeParams(texel.NewParams(intensity, width, height))); err != nil {
		return nil, fmt.Errorf("write params: %w", err)
	}
	if err := r.dev.Upload(src, pix, width, height); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	wg := WorkgroupsFor(width, height)
	Logger().Debug("compute: dispatch",
		"device", r.dev.Name(), "kernel", prog.Name,
		"width", width, "height", height, "workgroups", wg)

	if err := r.dev.Dispatch(ctx, k, Bindings{Params: params, Source: src, Dest: dst}, wg); err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", prog.Name, err)
	}
	out, err := r.dev.Download(ctx, dst)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return out, nil
}

// Close releases every cached kernel and the device.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, k := range r.kernels {
		k.Release()
		delete(r.kernels, name)
	}
	r.dev.Release()
}
