package compute

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-filters-mcp/internal/texel"
)

// SoftwareName is the Name of the software device.
const SoftwareName = "software"

// Software is a Device that executes the Go form of each kernel, splitting
// the dispatch grid into row bands that run on separate goroutines.
//
// CompileKernel also compiles the WGSL form with naga so that a broken
// kernel is caught even where no GPU exists. With Strict set a naga failure
// fails the compile; otherwise it is logged and the Go kernel is used.
type Software struct {
	Strict bool

	released atomic.Bool
}

// NewSoftware returns a ready software device.
func NewSoftware() *Software {
	return &Software{}
}

// SoftwareAcquirer always succeeds.
var SoftwareAcquirer Acquirer = AcquirerFunc(func(ctx context.Context) (Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Logger().Info("compute: acquired device", "device", SoftwareName)
	return NewSoftware(), nil
})

type softBuffer struct {
	data  []byte
	usage Usage
}

func (b *softBuffer) Size() uint64 { return uint64(len(b.data)) }
func (b *softBuffer) Release()     { b.data = nil }

type softTexture struct {
	texels []uint32
	width  int
	height int
}

func (t *softTexture) Width() int  { return t.width }
func (t *softTexture) Height() int { return t.height }
func (t *softTexture) Release()    { t.texels = nil }

type softKernel struct {
	prog  texel.Program
	spirv []uint32
}

func (k *softKernel) Name() string { return k.prog.Name }
func (k *softKernel) Release()     { k.spirv = nil }

func (s *Software) Name() string { return SoftwareName }

func (s *Software) check() error {
	if s.released.Load() {
		return ErrReleased
	}
	return nil
}

func (s *Software) AllocateBuffer(size uint64, usage Usage) (Buffer, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return &softBuffer{data: make([]byte, size), usage: usage}, nil
}

func (s *Software) AllocateTexture(width, height int, format Format) (Texture, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if format != FormatRGBA8 {
		return nil, fmt.Errorf("unsupported texture format %d", format)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	return &softTexture{texels: make([]uint32, width*height), width: width, height: height}, nil
}

func (s *Software) WriteBuffer(buf Buffer, data []byte) error {
	if err := s.check(); err != nil {
		return err
	}
	b, ok := buf.(*softBuffer)
	if !ok {
		return fmt.Errorf("buffer %T not allocated by %s device", buf, SoftwareName)
	}
	if len(data) > len(b.data) {
		return fmt.Errorf("write of %d bytes into %d-byte buffer", len(data), len(b.data))
	}
	copy(b.data, data)
	return nil
}

func (s *Software) Upload(tex Texture, pix []byte, width, height int) error {
	if err := s.check(); err != nil {
		return err
	}
	t, ok := tex.(*softTexture)
	if !ok {
		return fmt.Errorf("texture %T not allocated by %s device", tex, SoftwareName)
	}
	if width != t.width || height != t.height || len(pix) != width*height*4 {
		return fmt.Errorf("upload %dx%d (%d bytes) into %dx%d texture", width, height, len(pix), t.width, t.height)
	}
	copy(t.texels, texel.PackBytes(pix))
	return nil
}

func (s *Software) CompileKernel(prog texel.Program) (Kernel, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if prog.Kernel == nil {
		return nil, fmt.Errorf("%s: no kernel: %w", prog.Name, ErrKernel)
	}

	k := &softKernel{prog: prog}
	spirv, err := CompileSPIRV(prog.Source)
	switch {
	case err == nil:
		k.spirv = spirv
	case s.Strict:
		return nil, fmt.Errorf("%s: %w: %w", prog.Name, ErrKernel, err)
	default:
		Logger().Warn("compute: WGSL kernel not validated", "kernel", prog.Name, "err", err)
	}
	return k, nil
}

func (s *Software) Dispatch(ctx context.Context, k Kernel, b Bindings, wg Workgroups) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sk, ok := k.(*softKernel)
	if !ok {
		return fmt.Errorf("kernel %T not compiled by %s device: %w", k, SoftwareName, ErrKernel)
	}
	pb, ok := b.Params.(*softBuffer)
	if !ok {
		return errors.New("params binding is not a software buffer")
	}
	src, ok := b.Source.(*softTexture)
	if !ok {
		return errors.New("source binding is not a software texture")
	}
	dst, ok := b.Dest.(*softTexture)
	if !ok {
		return errors.New("destination binding is not a software texture")
	}
	if src.width != dst.width || src.height != dst.height {
		return fmt.Errorf("source %dx%d and destination %dx%d differ", src.width, src.height, dst.width, dst.height)
	}

	p, err := DecodeParams(pb.data)
	if err != nil {
		return err
	}

	n := texel.WorkgroupSize
	cover := image.Rect(0, 0, int(wg.X)*n, int(wg.Y)*n)
	if wg.Z == 0 {
		cover = image.Rectangle{}
	}
	region := cover.Intersect(image.Rect(0, 0, src.width, src.height))

	im := texel.Image{Texels: src.texels, Width: src.width, Height: src.height}
	parallel.Line(region.Dy(), func(start, end int) {
		band := image.Rect(region.Min.X, region.Min.Y+start, region.Max.X, region.Min.Y+end)
		texel.RunRegion(sk.prog, im, p, dst.texels, band)
	})
	return nil
}

func (s *Software) Download(ctx context.Context, tex Texture) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, ok := tex.(*softTexture)
	if !ok {
		return nil, fmt.Errorf("texture %T not allocated by %s device", tex, SoftwareName)
	}
	return texel.UnpackBytes(t.texels), nil
}

// Release marks the device unusable. It is safe to call more than once.
func (s *Software) Release() {
	s.released.Store(true)
}
