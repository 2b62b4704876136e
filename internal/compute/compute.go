// Package compute dispatches per-texel kernels to a parallel device.
//
// A Device is the host capability the parallel backend needs: it allocates
// buffers and textures, uploads pixels, compiles kernels and dispatches them
// over a grid of 8x8 workgroups. Devices are obtained once through an
// Acquirer; an unavailable device is reported then, with ErrUnavailable, and
// never per call. Runner drives one filter through a Device.
//
// Two devices exist: Software, which runs the Go form of each kernel across
// goroutines and is always available, and the WebGPU device in the webgpu
// sub-package, which runs the WGSL form on a GPU.
package compute

import (
	"context"
	"errors"

	"github.com/ironsheep/image-filters-mcp/internal/texel"
)

var (
	// ErrUnavailable reports that no parallel device could be acquired.
	ErrUnavailable = errors.New("compute device unavailable")

	// ErrKernel reports a kernel that failed to compile or dispatch.
	ErrKernel = errors.New("kernel failed")

	// ErrReleased reports use of a device after Release.
	ErrReleased = errors.New("device released")
)

// Usage flags describe how a buffer is bound.
type Usage uint32

const (
	UsageUniform Usage = 1 << iota
	UsageStorage
	UsageCopySrc
	UsageCopyDst
	UsageMapRead
)

// Format is a texture texel format.
type Format int

const (
	// FormatRGBA8 stores four 8-bit channels packed into one 32-bit word,
	// red in the low byte.
	FormatRGBA8 Format = iota
)

// Buffer is device memory holding raw bytes, such as the parameter block.
type Buffer interface {
	Size() uint64
	Release()
}

// Texture is a width x height image on the device.
type Texture interface {
	Width() int
	Height() int
	Release()
}

// Kernel is a compiled program ready for dispatch.
type Kernel interface {
	Name() string
	Release()
}

// Bindings is the group-0 layout every kernel declares: the parameter
// block, the source texture and the destination texture.
type Bindings struct {
	Params Buffer
	Source Texture
	Dest   Texture
}

// Workgroups is a dispatch grid size.
type Workgroups struct {
	X, Y, Z uint32
}

// WorkgroupsFor covers a width x height image with square workgroups.
func WorkgroupsFor(width, height int) Workgroups {
	n := texel.WorkgroupSize
	return Workgroups{
		X: uint32((width + n - 1) / n),
		Y: uint32((height + n - 1) / n),
		Z: 1,
	}
}

// Device is a parallel execution context.
//
// Dispatch runs to completion once started; ctx is checked before work is
// submitted. Implementations must be safe for concurrent use.
type Device interface {
	Name() string
	AllocateBuffer(size uint64, usage Usage) (Buffer, error)
	AllocateTexture(width, height int, format Format) (Texture, error)
	WriteBuffer(buf Buffer, data []byte) error
	Upload(tex Texture, pix []byte, width, height int) error
	CompileKernel(prog texel.Program) (Kernel, error)
	Dispatch(ctx context.Context, k Kernel, b Bindings, wg Workgroups) error
	Download(ctx context.Context, tex Texture) ([]byte, error)
	Release()
}

// Acquirer obtains a Device. It is the single, possibly slow, capability
// probe; failures wrap ErrUnavailable.
type Acquirer interface {
	Acquire(ctx context.Context) (Device, error)
}

// AcquirerFunc adapts a function to Acquirer.
type AcquirerFunc func(ctx context.Context) (Device, error)

// Acquire calls f.
func (f AcquirerFunc) Acquire(ctx context.Context) (Device, error) {
	return f(ctx)
}

// First tries each acquirer in order and returns the first device obtained.
// If every acquirer fails the result wraps ErrUnavailable.
func First(acquirers ...Acquirer) Acquirer {
	return AcquirerFunc(func(ctx context.Context) (Device, error) {
		var errs []error
		for _, a := range acquirers {
			dev, err := a.Acquire(ctx)
			if err == nil {
				return dev, nil
			}
			Logger().Info("compute: acquirer failed", "err", err)
			errs = append(errs, err)
		}
		return nil, errors.Join(append([]error{ErrUnavailable}, errs...)...)
	})
}
