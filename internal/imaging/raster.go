package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Raster is a decoded image as the engine sees it: Width*Height pixels of
// non-premultiplied RGBA, row-major, 4 bytes per pixel.
type Raster struct {
	Pix    []byte
	Width  int
	Height int
}

// FromImage converts any image to a Raster whose origin is (0,0).
func FromImage(img image.Image) *Raster {
	nrgba := imaging.Clone(img)
	return &Raster{
		Pix:    nrgba.Pix,
		Width:  nrgba.Rect.Dx(),
		Height: nrgba.Rect.Dy(),
	}
}

// NewRaster wraps an existing buffer. The length must be width*height*4.
func NewRaster(pix []byte, width, height int) (*Raster, error) {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("buffer of %d bytes does not hold a %dx%d image", len(pix), width, height)
	}
	return &Raster{Pix: pix, Width: width, Height: height}, nil
}

// Image views r as an *image.NRGBA without copying.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	return &Raster{
		Pix:    append([]byte(nil), r.Pix...),
		Width:  r.Width,
		Height: r.Height,
	}
}

// ImageResult contains an encoded result image.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	OutputPath  string `json:"output_path,omitempty"`
}

// EncodePNG encodes r as a base64 PNG result.
func EncodePNG(r *Raster) (*ImageResult, error) {
	if r.Width == 0 || r.Height == 0 {
		return nil, fmt.Errorf("cannot encode empty %dx%d image", r.Width, r.Height)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, r.Image(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       r.Width,
		Height:      r.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes r to path in the format named by the path's extension.
func Save(r *Raster, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}
	if err := imaging.Save(r.Image(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
