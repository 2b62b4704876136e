// Package imaging moves images between files and the raw RGBA buffers the
// filter engine works on.
//
// Files are decoded with github.com/disintegration/imaging and converted to
// a Raster: a row-major, non-premultiplied RGBA byte buffer with no padding
// between rows. Results travel back out either as base64-encoded PNG or as
// a file written in the format its extension names.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. A Raster returned from the
// cache is shared; callers that need to modify pixels must Clone it first.
// Every engine operation returns a new buffer, so the usual flow never
// modifies a cached Raster.
//
// # Color Representation
//
// Sampled colors are returned in several formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads and conversions. Large images may consume significant memory when
// cached. Use Evict() or Clear() to manage memory for long-running processes.
package imaging
