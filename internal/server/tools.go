package server

import "github.com/ironsheep/image-filters-mcp/internal/catalog"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional file to also write the result to; the extension selects the format (png, jpg, gif, tif, bmp)",
	}
}

func intensityProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"minimum":     catalog.MinIntensity,
		"maximum":     catalog.MaxIntensity,
		"description": "Effect strength from 0 to 1. Defaults to the filter's default intensity",
	}
}

func filterProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        catalog.ListAll(),
		"description": "Filter name, as listed by filter_list",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Sampling
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a pixel, optionally after applying a filter. Use this to check what a filter does to a specific spot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"filter":    filterProperty(),
					"intensity": intensityProperty(),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Filter Catalog
		{
			Name:        "filter_list",
			Description: "List the available filters with their metadata, optionally restricted to one category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"enum":        catalog.ListCategories(),
						"description": "Optional category to list",
					},
				},
			},
		},
		{
			Name:        "filter_categories",
			Description: "List the filter categories in display order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "filter_metadata",
			Description: "Get the description, category and intensity range of one filter.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": filterProperty(),
				},
				"required": []string{"filter"},
			},
		},

		// Filter Application
		{
			Name:        "filter_apply",
			Description: "Apply a filter to an image and return the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"filter":      filterProperty(),
					"intensity":   intensityProperty(),
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "filter"},
			},
		},
		{
			Name:        "filter_compare_backends",
			Description: "Apply a filter on both the sequential and the parallel backend and report the largest per-channel difference. The backends are expected to agree within 1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"filter":    filterProperty(),
					"intensity": intensityProperty(),
				},
				"required": []string{"path", "filter"},
			},
		},
		{
			Name:        "image_adjust_hue",
			Description: "Rotate the hue of every pixel by a number of degrees. Any value is accepted and wrapped into 0-360.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"degrees": map[string]interface{}{
						"type":        "number",
						"description": "Hue shift in degrees",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "degrees"},
			},
		},

		// Geometric Transforms
		{
			Name:        "image_resize",
			Description: "Resize an image with bilinear interpolation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Target height in pixels",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image clockwise about its center. The canvas grows to hold the whole rotated image; uncovered corners are transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"degrees": map[string]interface{}{
						"type":        "number",
						"description": "Rotation angle in degrees",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "degrees"},
			},
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally (left to right) or vertically (top to bottom).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"axis": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Mirror direction",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "axis"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. The region must lie inside the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Analysis
		{
			Name:        "image_histogram",
			Description: "Count red, green, blue and luminance values into 256 bins each.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
