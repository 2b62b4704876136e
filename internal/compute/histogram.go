package compute

import (
	"sync"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-filters-mcp/internal/histogram"
)

// Histogram counts a width x height buffer in row bands on separate
// goroutines and merges the partial counts.
func Histogram(pix []byte, width, height int) *histogram.Histogram {
	var (
		mu    sync.Mutex
		parts []*histogram.Histogram
	)
	stride := width * 4
	parallel.Line(height, func(start, end int) {
		h := histogram.Compute(pix[start*stride : end*stride])
		mu.Lock()
		parts = append(parts, h)
		mu.Unlock()
	})

	out := &histogram.Histogram{}
	out.Merge(parts...)
	return out
}
