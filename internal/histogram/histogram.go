// Package histogram counts channel and luminance frequencies of an RGBA buffer.
//
// Counting is a commutative accumulation: Compute over any split of the
// pixels followed by Merge gives the same result as one Compute over the
// whole buffer. The parallel backend relies on that to count row bands
// independently.
package histogram

import (
	"github.com/ironsheep/image-filters-mcp/internal/numeric"
)

// Bins is the number of buckets per channel.
const Bins = 256

// Histogram holds one frequency array per channel plus luminance.
type Histogram struct {
	Red       [Bins]uint32 `json:"red"`
	Green     [Bins]uint32 `json:"green"`
	Blue      [Bins]uint32 `json:"blue"`
	Luminance [Bins]uint32 `json:"luminance"`
}

// Compute counts every whole pixel in pix. A trailing partial pixel is ignored.
func Compute(pix []byte) *Histogram {
	h := &Histogram{}
	h.Add(pix)
	return h
}

// Add accumulates the pixels of pix into h.
func (h *Histogram) Add(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := pix[i], pix[i+1], pix[i+2]
		h.Red[r]++
		h.Green[g]++
		h.Blue[b]++
		h.Luminance[LuminanceBucket(r, g, b)]++
	}
}

// LuminanceBucket is the rounded Rec. 709 luminance of one pixel.
func LuminanceBucket(r, g, b uint8) uint8 {
	return numeric.RoundByte(numeric.Luminance(float32(r), float32(g), float32(b)))
}

// Merge adds the counts of every part into h.
func (h *Histogram) Merge(parts ...*Histogram) {
	for _, p := range parts {
		if p == nil {
			continue
		}
		for i := 0; i < Bins; i++ {
			h.Red[i] += p.Red[i]
			h.Green[i] += p.Green[i]
			h.Blue[i] += p.Blue[i]
			h.Luminance[i] += p.Luminance[i]
		}
	}
}

// Total is the number of pixels counted.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h.Red {
		n += uint64(c)
	}
	return n
}
