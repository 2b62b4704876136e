// Package server implements the MCP (Model Context Protocol) server that
// exposes the filter engine as tools.
//
// The server speaks JSON-RPC 2.0 and lets MCP clients load images, run any
// of the catalog filters at a chosen intensity, apply geometric transforms
// and inspect the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Sampling:
//   - image_sample_color: Get color at pixel, optionally after a filter
//   - image_sample_colors_multi: Sample multiple points
//
// Filter Catalog:
//   - filter_list: Filters with metadata, optionally for one category
//   - filter_categories: Category names in display order
//   - filter_metadata: One filter's metadata
//
// Filter Application:
//   - filter_apply: Run a filter at an intensity
//   - filter_compare_backends: Largest difference between the sequential
//     and parallel backends for one filter
//   - image_adjust_hue: Rotate hue by degrees
//
// Geometric Transforms:
//   - image_resize, image_rotate, image_flip, image_crop
//
// Analysis:
//   - image_histogram: Per-channel and luminance counts
//
// Image results are returned as base64 PNG and can also be written to an
// output_path.
//
// # Backends
//
// Filters run on the engine handed to New. When the engine holds a compute
// device, filter_apply uses it and falls back to the sequential backend if
// the device fails. filter_compare_backends needs a device.
//
// # Image Caching
//
// Decoded rasters are cached by path for the lifetime of the server, so
// repeated tool calls on one file decode it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	eng := engine.New(engine.Options{Device: dev})
//	defer eng.Close()
//	if err := server.New(eng).Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
