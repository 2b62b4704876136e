package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-filters-mcp/internal/catalog"
	"github.com/ironsheep/image-filters-mcp/internal/engine"
	"github.com/ironsheep/image-filters-mcp/internal/histogram"
	"github.com/ironsheep/image-filters-mcp/internal/imaging"
	"github.com/ironsheep/image-filters-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "filter_apply").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image raster from cache as needed
//  4. Calls the engine or imaging function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Sampling
	case "image_sample_color":
		return s.handleImageSampleColor(ctx, args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Filter Catalog
	case "filter_list":
		return s.handleFilterList(args)
	case "filter_categories":
		return s.handleFilterCategories()
	case "filter_metadata":
		return s.handleFilterMetadata(args)

	// Filter Application
	case "filter_apply":
		return s.handleFilterApply(ctx, args)
	case "filter_compare_backends":
		return s.handleFilterCompareBackends(ctx, args)
	case "image_adjust_hue":
		return s.handleImageAdjustHue(ctx, args)

	// Geometric Transforms
	case "image_resize":
		return s.handleImageResize(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Analysis
	case "image_histogram":
		return s.handleImageHistogram(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// encodeResult encodes r as base64 PNG and, when outputPath is set, also
// writes it to disk.
func encodeResult(r *imaging.Raster, outputPath string) (*imaging.ImageResult, error) {
	res, err := imaging.EncodePNG(r)
	if err != nil {
		return nil, err
	}
	if outputPath != "" {
		if err := imaging.Save(r, outputPath); err != nil {
			return nil, err
		}
		res.OutputPath = outputPath
	}
	return res, nil
}

// resolveIntensity returns the requested intensity, or the filter's default
// when none was given.
func resolveIntensity(filter string, intensity *float32) (float32, error) {
	md, ok := catalog.Lookup(filter)
	if !ok {
		return 0, fmt.Errorf("%q: %w", filter, engine.ErrUnknownFilter)
	}
	if intensity == nil {
		return md.DefaultIntensity, nil
	}
	if *intensity < md.MinIntensity || *intensity > md.MaxIntensity {
		return 0, fmt.Errorf("intensity %v outside [%v, %v]", *intensity, md.MinIntensity, md.MaxIntensity)
	}
	return *intensity, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Sampling Handlers ===

type imageSampleColorArgs struct {
	Path      string   `json:"path"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Filter    string   `json:"filter,omitempty"`
	Intensity *float32 `json:"intensity,omitempty"`
}

func (s *Server) handleImageSampleColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}

	if a.Filter != "" {
		intensity, err := resolveIntensity(a.Filter, a.Intensity)
		if err != nil {
			return nil, err
		}
		pix, err := s.engine.ApplyFilter(ctx, r.Pix, r.Width, r.Height, a.Filter, intensity)
		if err != nil {
			return nil, err
		}
		r = &imaging.Raster{Pix: pix, Width: r.Width, Height: r.Height}
	}
	return imaging.SampleColor(r, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(r, points)
}

// === Filter Catalog Handlers ===

// FilterInfo is one catalog entry: the name tools accept plus its metadata.
type FilterInfo struct {
	ID string `json:"id"`
	catalog.Metadata
}

// FilterListResult lists catalog entries.
type FilterListResult struct {
	Filters []FilterInfo `json:"filters"`
}

type filterListArgs struct {
	Category string `json:"category,omitempty"`
}

func (s *Server) handleFilterList(args json.RawMessage) (interface{}, error) {
	var a filterListArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	names := catalog.ListAll()
	if a.Category != "" {
		names = catalog.ListByCategory(catalog.Category(a.Category))
		if len(names) == 0 {
			return nil, fmt.Errorf("unknown category: %s", a.Category)
		}
	}

	out := FilterListResult{Filters: make([]FilterInfo, 0, len(names))}
	for _, name := range names {
		md, _ := catalog.Lookup(name)
		out.Filters = append(out.Filters, FilterInfo{ID: name, Metadata: md})
	}
	return out, nil
}

func (s *Server) handleFilterCategories() (interface{}, error) {
	return map[string][]string{"categories": catalog.ListCategories()}, nil
}

type filterMetadataArgs struct {
	Filter string `json:"filter"`
}

func (s *Server) handleFilterMetadata(args json.RawMessage) (interface{}, error) {
	var a filterMetadataArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	md, ok := catalog.Lookup(a.Filter)
	if !ok {
		return nil, fmt.Errorf("%q: %w", a.Filter, engine.ErrUnknownFilter)
	}
	return FilterInfo{ID: a.Filter, Metadata: md}, nil
}

// === Filter Application Handlers ===

// FilterResult is a filtered image plus how it was produced. Backend is the
// backend that actually ran, which is sequential after a device failure.
type FilterResult struct {
	Filter    string  `json:"filter"`
	Intensity float32 `json:"intensity"`
	Backend   string  `json:"backend"`
	*imaging.ImageResult
}

type filterApplyArgs struct {
	Path       string   `json:"path"`
	Filter     string   `json:"filter"`
	Intensity  *float32 `json:"intensity,omitempty"`
	OutputPath string   `json:"output_path,omitempty"`
}

func (s *Server) handleFilterApply(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a filterApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	intensity, err := resolveIntensity(a.Filter, a.Intensity)
	if err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}

	applied, err := s.engine.Apply(ctx, engine.Auto, r.Pix, r.Width, r.Height, a.Filter, intensity)
	if err != nil {
		return nil, err
	}
	res, err := encodeResult(&imaging.Raster{Pix: applied.Pix, Width: r.Width, Height: r.Height}, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return FilterResult{
		Filter:      a.Filter,
		Intensity:   intensity,
		Backend:     applied.Backend.String(),
		ImageResult: res,
	}, nil
}

// CompareResult reports how far the two backends disagree on one filter.
type CompareResult struct {
	Filter          string  `json:"filter"`
	Intensity       float32 `json:"intensity"`
	Device          string  `json:"device"`
	MaxDifference   int     `json:"max_difference"`
	WithinTolerance bool    `json:"within_tolerance"`
}

// compareTolerance is the largest per-channel difference the backends may
// show.
const compareTolerance = 1

type filterCompareArgs struct {
	Path      string   `json:"path"`
	Filter    string   `json:"filter"`
	Intensity *float32 `json:"intensity,omitempty"`
}

func (s *Server) handleFilterCompareBackends(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a filterCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	intensity, err := resolveIntensity(a.Filter, a.Intensity)
	if err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}

	seq, err := s.engine.ApplyFilterOn(ctx, engine.Sequential, r.Pix, r.Width, r.Height, a.Filter, intensity)
	if err != nil {
		return nil, err
	}
	par, err := s.engine.ApplyFilterOn(ctx, engine.Parallel, r.Pix, r.Width, r.Height, a.Filter, intensity)
	if err != nil {
		return nil, err
	}
	diff, err := engine.Compare(seq, par)
	if err != nil {
		return nil, err
	}
	return CompareResult{
		Filter:          a.Filter,
		Intensity:       intensity,
		Device:          s.engine.DeviceName(),
		MaxDifference:   diff,
		WithinTolerance: diff <= compareTolerance,
	}, nil
}

type imageAdjustHueArgs struct {
	Path       string  `json:"path"`
	Degrees    float32 `json:"degrees"`
	OutputPath string  `json:"output_path,omitempty"`
}

func (s *Server) handleImageAdjustHue(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageAdjustHueArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}
	pix, err := s.engine.AdjustHue(ctx, r.Pix, r.Width, r.Height, a.Degrees)
	if err != nil {
		return nil, err
	}
	return encodeResult(&imaging.Raster{Pix: pix, Width: r.Width, Height: r.Height}, a.OutputPath)
}

// === Geometric Transform Handlers ===

// maxResizePixels bounds the output of image_resize.
const maxResizePixels = 1 << 26

type imageResizeArgs struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width > 0 && a.Height > maxResizePixels/a.Width {
		return nil, fmt.Errorf("resize to %dx%d exceeds %d pixels", a.Width, a.Height, maxResizePixels)
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}
	pix, err := s.engine.Resize(r.Pix, r.Width, r.Height, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return encodeResult(&imaging.Raster{Pix: pix, Width: a.Width, Height: a.Height}, a.OutputPath)
}

type imageRotateArgs struct {
	Path       string  `json:"path"`
	Degrees    float32 `json:"degrees"`
	OutputPath string  `json:"output_path,omitempty"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}
	rot, err := s.engine.Rotate(r.Pix, r.Width, r.Height, a.Degrees)
	if err != nil {
		return nil, err
	}
	return encodeResult(&imaging.Raster{Pix: rot.Pix, Width: rot.Width, Height: rot.Height}, a.OutputPath)
}

type imageFlipArgs struct {
	Path       string `json:"path"`
	Axis       string `json:"axis"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	axis, ok := transform.ParseAxis(a.Axis)
	if !ok {
		return nil, fmt.Errorf("unknown axis: %q", a.Axis)
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}
	pix, err := s.engine.Flip(r.Pix, r.Width, r.Height, axis)
	if err != nil {
		return nil, err
	}
	return encodeResult(&imaging.Raster{Pix: pix, Width: r.Width, Height: r.Height}, a.OutputPath)
}

type imageCropArgs struct {
	Path       string `json:"path"`
	X1         int    `json:"x1"`
	Y1         int    `json:"y1"`
	X2         int    `json:"x2"`
	Y2         int    `json:"y2"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.X1 >= a.X2 || a.Y1 >= a.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}
	w, h := a.X2-a.X1, a.Y2-a.Y1
	pix, err := s.engine.Crop(r.Pix, r.Width, r.Height, a.X1, a.Y1, w, h)
	if err != nil {
		return nil, err
	}
	return encodeResult(&imaging.Raster{Pix: pix, Width: w, Height: h}, a.OutputPath)
}

// === Analysis Handlers ===

// HistogramResult is a histogram with the image size it was counted over.
type HistogramResult struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels uint64 `json:"pixels"`
	*histogram.Histogram
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Raster(a.Path)
	if err != nil {
		return nil, err
	}
	h, err := s.engine.Histogram(r.Pix, r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	return HistogramResult{
		Width:     r.Width,
		Height:    r.Height,
		Pixels:    h.Total(),
		Histogram: h,
	}, nil
}
