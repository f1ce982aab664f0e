package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pointSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x": map[string]interface{}{"type": "integer"},
		"y": map[string]interface{}{"type": "integer"},
	},
	"required": []string{"x", "y"},
}

var lineSchema = map[string]interface{}{
	"type":        "object",
	"description": "Segment with integer endpoints p0 and p1 and an optional contour area",
	"properties": map[string]interface{}{
		"p0":   pointSchema,
		"p1":   pointSchema,
		"area": map[string]interface{}{"type": "number"},
	},
	"required": []string{"p0", "p1"},
}

var linesSchema = map[string]interface{}{
	"type":        "array",
	"description": "Raw candidate segments",
	"items":       lineSchema,
}

var pathSchema = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var algorithmSchema = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"hough", "contours"},
	"description": "Segment extraction algorithm. Default from configuration",
}

var regionSchema = map[string]interface{}{
	"type":        "object",
	"description": "Optional region of interest; segments are still reported in image coordinates",
	"properties": map[string]interface{}{
		"x1": map[string]interface{}{"type": "integer", "description": "Left edge (inclusive)"},
		"y1": map[string]interface{}{"type": "integer", "description": "Top edge (inclusive)"},
		"x2": map[string]interface{}{"type": "integer", "description": "Right edge (exclusive)"},
		"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge (exclusive)"},
	},
	"required": []string{"x1", "y1", "x2", "y2"},
}

var pairSchema = map[string]interface{}{
	"type":     "array",
	"items":    map[string]interface{}{"type": "integer"},
	"minItems": 2,
	"maxItems": 2,
}

func axisProperties(what string) map[string]interface{} {
	return map[string]interface{}{
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "Vertical axis x=<value>" + what + ". Give x or y, not both",
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Horizontal axis y=<value>" + what + ". Give x or y, not both",
		},
	}
}

func object(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func withLine(props map[string]interface{}) map[string]interface{} {
	props["line"] = lineSchema
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Single line operations
		{
			Name:        "line_measure",
			Description: "Report length, angle in degrees (0-360, y down), slope, midpoint and orientation of a segment.",
			InputSchema: object(withLine(map[string]interface{}{}), "line"),
		},
		{
			Name:        "line_intercept",
			Description: "Find where the infinite line through a segment crosses an axis. With x returns the y value at that column; with y returns the x value at that row.",
			InputSchema: object(withLine(axisProperties("")), "line"),
		},
		{
			Name:        "line_extend",
			Description: "Extend a segment until it meets two parallel axes. The endpoint on the larger axis value comes first. Set to_frame to extend across the configured frame instead.",
			InputSchema: object(withLine(map[string]interface{}{
				"horizontals": pairSchema,
				"verticals":   pairSchema,
				"to_frame": map[string]interface{}{
					"type":        "boolean",
					"description": "Extend vertical lines across the frame height and the rest across its width",
				},
			}), "line"),
		},
		{
			Name:        "line_split",
			Description: "Split a segment at a fraction of its length measured from one endpoint.",
			InputSchema: object(withLine(map[string]interface{}{
				"end": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{0, 1},
					"description": "Endpoint the ratio is measured from. Default 0",
				},
				"ratio": map[string]interface{}{
					"type":        "number",
					"description": "Fraction strictly between 0 and 1. Default 0.5",
				},
			}), "line"),
		},
		{
			Name:        "line_rotate",
			Description: "Rotate a segment about a center point and re-anchor it there. Defaults to the segment midpoint.",
			InputSchema: object(withLine(map[string]interface{}{
				"degrees": map[string]interface{}{"type": "number"},
				"center":  pointSchema,
			}), "line", "degrees"),
		},
		{
			Name:        "line_mirror",
			Description: "Reflect a segment across the axis x=<value> or y=<value>, or about a point.",
			InputSchema: object(withLine(func() map[string]interface{} {
				props := axisProperties("")
				props["point"] = pointSchema
				return props
			}()), "line"),
		},
		{
			Name:        "line_intersect",
			Description: "Intersect the infinite lines through two segments. found is false for parallel lines.",
			InputSchema: object(map[string]interface{}{
				"a": lineSchema,
				"b": lineSchema,
			}, "a", "b"),
		},
		{
			Name:        "line_perp_distance",
			Description: "Perpendicular distance from a point, or from another segment's midpoint, to the infinite line through a segment.",
			InputSchema: object(withLine(map[string]interface{}{
				"point": pointSchema,
				"other": lineSchema,
			}), "line"),
		},
		{
			Name:        "line_passing_by",
			Description: "Build the segment with a given slope through a point, spanning y=0 to y=frame_height.",
			InputSchema: object(map[string]interface{}{
				"point": pointSchema,
				"slope": map[string]interface{}{"type": "number"},
				"vertical": map[string]interface{}{
					"type":        "boolean",
					"description": "Use a vertical slope; slope is ignored",
				},
				"frame_height": map[string]interface{}{
					"type":        "integer",
					"description": "Default from configuration",
				},
			}, "point"),
		},

		// Line set operations
		{
			Name:        "lines_classify",
			Description: "Split segments into vertical and horizontal sets. A line may be in both sets when tolerances overlap; degenerate lines are in neither.",
			InputSchema: object(map[string]interface{}{
				"lines":                linesSchema,
				"vertical_tolerance":   map[string]interface{}{"type": "number"},
				"horizontal_tolerance": map[string]interface{}{"type": "number"},
				"signed_slope": map[string]interface{}{
					"type":        "boolean",
					"description": "Compare the signed slope instead of its magnitude, so steep falling lines count as horizontal",
				},
			}, "lines"),
		},
		{
			Name:        "lines_dedupe",
			Description: "Classify segments and drop near-duplicates within each set. The first line of a cluster survives.",
			InputSchema: object(map[string]interface{}{
				"lines": linesSchema,
				"min_line_distance": map[string]interface{}{
					"type":        "number",
					"description": "Merge distance in pixels. Default from configuration",
				},
			}, "lines"),
		},
		{
			Name:        "lines_extremes",
			Description: "Select the leftmost and rightmost vertical lines (axis x) or the topmost and bottommost horizontal lines (axis y).",
			InputSchema: object(map[string]interface{}{
				"lines": linesSchema,
				"axis": map[string]interface{}{
					"type": "string",
					"enum": []string{"x", "y"},
				},
				"margin": map[string]interface{}{"type": "integer"},
			}, "lines", "axis"),
		},
		{
			Name:        "lines_filter",
			Description: "Deduplicate segments and run operator chains (x_extremes, y_extremes, verticals, horizontals) over them, optionally keeping the largest by area.",
			InputSchema: object(map[string]interface{}{
				"lines": linesSchema,
				"chains": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				},
				"quantity": map[string]interface{}{"type": "integer"},
			}, "lines"),
		},
		{
			Name:        "square_detect",
			Description: "Reconstruct the four corners of a rectangular target from raw segments. Set track to fall back on the last square found.",
			InputSchema: object(map[string]interface{}{
				"lines": linesSchema,
				"track": map[string]interface{}{"type": "boolean"},
			}, "lines"),
		},

		// Image input
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: object(map[string]interface{}{"path": pathSchema}, "path"),
		},
		{
			Name:        "image_segments",
			Description: "Extract raw candidate segments from an image.",
			InputSchema: object(map[string]interface{}{
				"path":       pathSchema,
				"algorithm":  algorithmSchema,
				"min_length": map[string]interface{}{"type": "integer"},
				"region":     regionSchema,
			}, "path"),
		},
		{
			Name:        "image_detect_lines",
			Description: "Extract segments from an image, deduplicate them and run the configured filter chains.",
			InputSchema: object(map[string]interface{}{
				"path":      pathSchema,
				"algorithm": algorithmSchema,
				"region":    regionSchema,
			}, "path"),
		},
		{
			Name:        "image_detect_square",
			Description: "Extract segments from an image and reconstruct the target square and its center.",
			InputSchema: object(map[string]interface{}{
				"path":      pathSchema,
				"algorithm": algorithmSchema,
				"region":    regionSchema,
				"track":     map[string]interface{}{"type": "boolean"},
			}, "path"),
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
