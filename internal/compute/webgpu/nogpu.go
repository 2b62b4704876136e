//go:build nogpu

package webgpu

import (
	"context"
	"fmt"

	"github.com/ironsheep/image-filters-mcp/internal/compute"
)

// Name is the Name of the WebGPU device.
const Name = "webgpu"

// Acquirer always fails in nogpu builds.
var Acquirer compute.Acquirer = compute.AcquirerFunc(Acquire)

// Acquire reports compute.ErrUnavailable.
func Acquire(context.Context) (compute.Device, error) {
	return nil, fmt.Errorf("%w: built with nogpu", compute.ErrUnavailable)
}
