// Package engine is the filter invocation surface hosts bind to.
//
// An Engine validates raw RGBA buffers, resolves filter names through the
// catalog and routes each call to one of two backends. The sequential
// backend (package filters) is always available. The parallel backend runs
// the per-texel kernels through an injected compute.Device; when the device
// fails during a call the Engine logs a warning and answers from the
// sequential backend instead. Both backends agree to within one unit per
// channel.
//
// Geometric transforms are backend independent and always run sequentially.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chewxy/math32"

	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/compute"
	"github.com/ironsheep/image-filters-mcp/internal/filters"
	"github.com/ironsheep/image-filters-mcp/internal/histogram"
	"github.com/ironsheep/image-filters-mcp/internal/texel"
	"github.com/ironsheep/image-filters-mcp/internal/transform"
)

var (
	// ErrUnknownFilter reports a filter name that is not in the catalog.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrBufferSize reports a pixel buffer whose length is not width*height*4.
	ErrBufferSize = errors.New("buffer size does not match dimensions")

	// ErrDimensions reports a negative or otherwise unusable width or height,
	// including sizes whose buffer length would overflow int, and non-finite
	// angles.
	ErrDimensions = errors.New("invalid dimensions")
)

// Backend selects where filters run.
type Backend int

const (
	// Auto uses the parallel backend when a device was supplied.
	Auto Backend = iota
	Sequential
	Parallel
)

func (b Backend) String() string {
	switch b {
	case Auto:
		return "auto"
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend accepts the names String returns, case-insensitively.
func ParseBackend(s string) (Backend, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return Auto, true
	case "sequential":
		return Sequential, true
	case "parallel":
		return Parallel, true
	}
	return Auto, false
}

// Options configures New.
type Options struct {
	// Device backs the parallel backend. Nil leaves only the sequential
	// backend. The Engine takes ownership and releases it in Close.
	Device compute.Device

	// Prefer is the backend ApplyFilter and AdjustHue use.
	Prefer Backend
}

// Engine applies filters and transforms to RGBA buffers. It is safe for
// concurrent use.
type Engine struct {
	runner  *compute.Runner
	backend Backend
}

// New returns an Engine. Preferring Parallel without a device falls back to
// Sequential with a warning.
func New(opts Options) *Engine {
	e := &Engine{backend: Sequential}
	if opts.Device != nil {
		e.runner = compute.NewRunner(opts.Device)
	}

	switch opts.Prefer {
	case Sequential:
	case Auto, Parallel:
		if e.runner != nil {
			e.backend = Parallel
		} else if opts.Prefer == Parallel {
			Logger().Warn("engine: parallel backend requested without a device; using sequential")
		}
	}
	return e
}

// Backend reports the backend calls are routed to.
func (e *Engine) Backend() Backend { return e.backend }

// DeviceName names the parallel device, or "" when there is none.
func (e *Engine) DeviceName() string {
	if e.runner == nil {
		return ""
	}
	return e.runner.Device().Name()
}

// Close releases the parallel device, if any.
func (e *Engine) Close() {
	if e.runner != nil {
		e.runner.Close()
	}
}

// checkDims rejects negative sizes and sizes whose RGBA buffer length does
// not fit in an int.
func checkDims(width, height int) error {
	if width < 0 || height < 0 || (height != 0 && width > math.MaxInt/4/height) {
		return fmt.Errorf("%dx%d: %w", width, height, ErrDimensions)
	}
	return nil
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func validate(pix []byte, width, height int) error {
	if err := checkDims(width, height); err != nil {
		return err
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("%d bytes for %dx%d image: %w", len(pix), width, height, ErrBufferSize)
	}
	return nil
}

// Result is a filtered buffer and the backend that produced it, which is
// Sequential when a parallel call fell back.
type Result struct {
	Pix     []byte
	Backend Backend
}

// ApplyFilter applies the named filter on the Engine's backend.
func (e *Engine) ApplyFilter(ctx context.Context, pix []byte, width, height int, name string, intensity float32) ([]byte, error) {
	res, err := e.Apply(ctx, e.backend, pix, width, height, name, intensity)
	return res.Pix, err
}

// ApplyFilterOn applies the named filter on an explicit backend. Asking for
// Parallel on an Engine without a device returns compute.ErrUnavailable.
func (e *Engine) ApplyFilterOn(ctx context.Context, backend Backend, pix []byte, width, height int, name string, intensity float32) ([]byte, error) {
	res, err := e.Apply(ctx, backend, pix, width, height, name, intensity)
	return res.Pix, err
}

// Apply is ApplyFilterOn reporting which backend answered.
func (e *Engine) Apply(ctx context.Context, backend Backend, pix []byte, width, height int, name string, intensity float32) (Result, error) {
	kind, ok := catalog.ParseKind(name)
	if !ok {
		return Result{}, fmt.Errorf("%q: %w", name, ErrUnknownFilter)
	}
	if err := validate(pix, width, height); err != nil {
		return Result{}, err
	}

	sequential := func() []byte {
		out, _ := filters.Apply(kind, pix, width, height, intensity)
		return out
	}
	prog, _ := texel.For(kind)
	return e.run(ctx, backend, prog, sequential, pix, width, height, intensity)
}

// AdjustHue rotates every pixel's hue by degrees; any value is accepted and
// wrapped into [0,360).
func (e *Engine) AdjustHue(ctx context.Context, pix []byte, width, height int, degrees float32) ([]byte, error) {
	if err := validate(pix, width, height); err != nil {
		return nil, err
	}
	if !finite(degrees) {
		return nil, fmt.Errorf("hue shift %v: %w", degrees, ErrDimensions)
	}
	sequential := func() []byte { return filters.AdjustHue(pix, width, height, degrees) }
	res, err := e.run(ctx, e.backend, texel.Hue(), sequential, pix, width, height, degrees)
	return res.Pix, err
}

func (e *Engine) run(ctx context.Context, backend Backend, prog texel.Program, sequential func() []byte, pix []byte, width, height int, param float32) (Result, error) {
	if backend == Auto {
		backend = e.backend
	}
	if backend == Sequential {
		return Result{Pix: sequential(), Backend: Sequential}, nil
	}
	if e.runner == nil {
		return Result{}, fmt.Errorf("parallel backend: %w", compute.ErrUnavailable)
	}

	out, err := e.runner.Run(ctx, prog, pix, width, height, param)
	if err == nil {
		return Result{Pix: out, Backend: Parallel}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	Logger().Warn("engine: parallel backend failed; using sequential",
		"kernel", prog.Name, "device", e.DeviceName(), "error", err)
	return Result{Pix: sequential(), Backend: Sequential}, nil
}

// Resize resamples to dstW x dstH with bilinear interpolation.
func (e *Engine) Resize(pix []byte, width, height, dstW, dstH int) ([]byte, error) {
	if err := validate(pix, width, height); err != nil {
		return nil, err
	}
	if dstW <= 0 || dstH <= 0 {
		return nil, fmt.Errorf("resize to %dx%d: %w", dstW, dstH, ErrDimensions)
	}
	if err := checkDims(dstW, dstH); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	return transform.Resize(pix, width, height, dstW, dstH), nil
}

// Rotate rotates clockwise by degrees about the centre, growing the canvas
// to hold the whole rotated image. Non-finite angles report ErrDimensions.
func (e *Engine) Rotate(pix []byte, width, height int, degrees float32) (transform.Rotated, error) {
	if err := validate(pix, width, height); err != nil {
		return transform.Rotated{}, err
	}
	if !finite(degrees) {
		return transform.Rotated{}, fmt.Errorf("rotate by %v: %w", degrees, ErrDimensions)
	}
	return transform.Rotate(pix, width, height, degrees), nil
}

// Flip mirrors the image about axis.
func (e *Engine) Flip(pix []byte, width, height int, axis transform.Axis) ([]byte, error) {
	if err := validate(pix, width, height); err != nil {
		return nil, err
	}
	return transform.Flip(pix, width, height, axis), nil
}

// Crop copies the w x h rectangle at (x,y). Rectangles that leave the
// source report transform.ErrRegion.
func (e *Engine) Crop(pix []byte, width, height, x, y, w, h int) ([]byte, error) {
	if err := validate(pix, width, height); err != nil {
		return nil, err
	}
	return transform.Crop(pix, width, height, x, y, w, h)
}

// Histogram counts channel and luminance values. With a parallel backend
// the rows are counted in bands concurrently.
func (e *Engine) Histogram(pix []byte, width, height int) (*histogram.Histogram, error) {
	if err := validate(pix, width, height); err != nil {
		return nil, err
	}
	if e.backend == Parallel {
		return compute.Histogram(pix, width, height), nil
	}
	return histogram.Compute(pix), nil
}

// Compare returns the largest per-channel absolute difference between two
// buffers of equal length.
func Compare(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("compare %d and %d bytes: %w", len(a), len(b), ErrBufferSize)
	}
	d := 0
	for i := range a {
		v := int(a[i]) - int(b[i])
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d, nil
}
