//go:build !nogpu

// Package webgpu implements compute.Device on a GPU through WebGPU.
//
// Textures are storage buffers of packed RGBA8 words, which is the layout
// the WGSL kernels in package texel bind at group 0. Build with the nogpu
// tag to compile the package without the native WebGPU library; Acquire
// then always reports compute.ErrUnavailable.
package webgpu

import (
	"context"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ironsheep/image-filters-mcp/internal/compute"
	"github.com/ironsheep/image-filters-mcp/internal/texel"
)

// Name is the Name of the WebGPU device.
const Name = "webgpu"

// Acquirer requests a low-power adapter and a device on it.
var Acquirer compute.Acquirer = compute.AcquirerFunc(Acquire)

// Acquire opens the GPU. Failures wrap compute.ErrUnavailable.
func Acquire(ctx context.Context) (compute.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, fmt.Errorf("%w: WebGPU instance not available", compute.ErrUnavailable)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: no GPU adapter: %w", compute.ErrUnavailable, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: no GPU device: %w", compute.ErrUnavailable, err)
	}

	compute.Logger().Info("compute: acquired device", "device", Name)
	return &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
	}, nil
}

// Device is a compute.Device backed by a WebGPU device and queue.
type Device struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	released bool
}

type buffer struct {
	buf  *wgpu.Buffer
	size uint64
}

func (b *buffer) Size() uint64 { return b.size }
func (b *buffer) Release()     { b.buf.Release() }

type texture struct {
	buffer
	width, height int
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

type kernel struct {
	name       string
	module     *wgpu.ShaderModule
	pipeline   *wgpu.ComputePipeline
	bindLayout *wgpu.BindGroupLayout
}

func (k *kernel) Name() string { return k.name }

func (k *kernel) Release() {
	k.bindLayout.Release()
	k.pipeline.Release()
	k.module.Release()
}

func toUsage(u compute.Usage) wgpu.BufferUsage {
	var out wgpu.BufferUsage
	if u&compute.UsageUniform != 0 {
		out |= wgpu.BufferUsageUniform
	}
	if u&compute.UsageStorage != 0 {
		out |= wgpu.BufferUsageStorage
	}
	if u&compute.UsageCopySrc != 0 {
		out |= wgpu.BufferUsageCopySrc
	}
	if u&compute.UsageCopyDst != 0 {
		out |= wgpu.BufferUsageCopyDst
	}
	if u&compute.UsageMapRead != 0 {
		out |= wgpu.BufferUsageMapRead
	}
	return out
}

func (d *Device) Name() string { return Name }

func (d *Device) lock() error {
	d.mu.Lock()
	if d.released {
		d.mu.Unlock()
		return compute.ErrReleased
	}
	return nil
}

func (d *Device) AllocateBuffer(size uint64, usage compute.Usage) (compute.Buffer, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()

	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: toUsage(usage),
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer: %w", err)
	}
	return &buffer{buf: buf, size: size}, nil
}

func (d *Device) AllocateTexture(width, height int, format compute.Format) (compute.Texture, error) {
	if format != compute.FormatRGBA8 {
		return nil, fmt.Errorf("unsupported texture format %d", format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()

	size := uint64(width * height * 4)
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture buffer: %w", err)
	}
	return &texture{buffer: buffer{buf: buf, size: size}, width: width, height: height}, nil
}

func (d *Device) WriteBuffer(buf compute.Buffer, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("buffer %T not allocated by %s device", buf, Name)
	}
	if uint64(len(data)) > b.size {
		return fmt.Errorf("write of %d bytes into %d-byte buffer", len(data), b.size)
	}
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()

	d.queue.WriteBuffer(b.buf, 0, data)
	return nil
}

func (d *Device) Upload(tex compute.Texture, pix []byte, width, height int) error {
	t, ok := tex.(*texture)
	if !ok {
		return fmt.Errorf("texture %T not allocated by %s device", tex, Name)
	}
	if width != t.width || height != t.height || len(pix) != width*height*4 {
		return fmt.Errorf("upload %dx%d (%d bytes) into %dx%d texture", width, height, len(pix), t.width, t.height)
	}
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()

	d.queue.WriteBuffer(t.buf, 0, pix)
	return nil
}

func (d *Device) CompileKernel(prog texel.Program) (compute.Kernel, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()

	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          prog.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: prog.Source},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: shader module: %w: %w", prog.Name, compute.ErrKernel, err)
	}

	pipeline, err := d.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: prog.Name,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: texel.EntryPoint,
		},
	})
	if err != nil {
		module.Release()
		return nil, fmt.Errorf("%s: compute pipeline: %w: %w", prog.Name, compute.ErrKernel, err)
	}

	return &kernel{
		name:       prog.Name,
		module:     module,
		pipeline:   pipeline,
		bindLayout: pipeline.GetBindGroupLayout(0),
	}, nil
}

func (d *Device) Dispatch(ctx context.Context, k compute.Kernel, b compute.Bindings, wg compute.Workgroups) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kk, ok := k.(*kernel)
	if !ok {
		return fmt.Errorf("kernel %T not compiled by %s device: %w", k, Name, compute.ErrKernel)
	}
	params, ok1 := b.Params.(*buffer)
	src, ok2 := b.Source.(*texture)
	dst, ok3 := b.Dest.(*texture)
	if !ok1 || !ok2 || !ok3 {
		return fmt.Errorf("bindings not allocated by %s device", Name)
	}
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()

	bindGroup, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: kk.bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: texel.BindingParams, Buffer: params.buf, Size: wgpu.WholeSize},
			{Binding: texel.BindingSource, Buffer: src.buf, Size: wgpu.WholeSize},
			{Binding: texel.BindingDest, Buffer: dst.buf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(kk.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(wg.X, wg.Y, wg.Z)
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish: %w", err)
	}
	defer cmd.Release()

	d.queue.Submit(cmd)
	return nil
}

func (d *Device) Download(ctx context.Context, tex compute.Texture) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, ok := tex.(*texture)
	if !ok {
		return nil, fmt.Errorf("texture %T not allocated by %s device", tex, Name)
	}
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()

	staging, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  t.size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("staging buffer: %w", err)
	}
	defer staging.Release()

	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("command encoder: %w", err)
	}
	encoder.CopyBufferToBuffer(t.buf, 0, staging, 0, t.size)
	cmd, err := encoder.Finish(nil)
	encoder.Release()
	if err != nil {
		return nil, fmt.Errorf("finish: %w", err)
	}
	defer cmd.Release()

	d.queue.Submit(cmd)
	d.device.Poll(true, nil)

	done := make(chan error, 1)
	staging.MapAsync(wgpu.MapModeRead, 0, t.size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- fmt.Errorf("map failed: %v", status)
			return
		}
		done <- nil
	})

	d.device.Poll(true, nil)
	if err := <-done; err != nil {
		return nil, err
	}

	out := make([]byte, t.size)
	copy(out, staging.GetMappedRange(0, uint(t.size)))
	staging.Unmap()
	return out, nil
}

// Release frees the queue, device, adapter and instance. Later calls on d
// return compute.ErrReleased.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.released = true
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}
