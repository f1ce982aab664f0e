// Package server implements the MCP (Model Context Protocol) server for line
// geometry and target detection tools.
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
// Single line operations:
//   - line_measure: Length, angle, slope, midpoint, orientation
//   - line_intercept: Crossing with x=<v> or y=<v>
//   - line_extend: Extend to two parallel axes or across the frame
//   - line_split: Split at a ratio from either end
//   - line_rotate: Rotate about a center
//   - line_mirror: Reflect across an axis or about a point
//   - line_intersect: Crossing point of two lines
//   - line_perp_distance: Perpendicular distance to a point or line midpoint
//   - line_passing_by: Line with a slope through a point
//
// Line set operations:
//   - lines_classify: Vertical and horizontal sets
//   - lines_dedupe: Redundancy elimination
//   - lines_extremes: Leftmost/rightmost or topmost/bottommost lines
//   - lines_filter: Operator chains and area ranking
//   - square_detect: Four-corner reconstruction
//
// Image input:
//   - image_load: Load image and get metadata
//   - image_segments: Raw candidate segments
//   - image_detect_lines: Segments through the filter pipeline
//   - image_detect_square: Segments through square reconstruction
//
// Lines are passed as {"p0": {"x": 0, "y": 0}, "p1": {"x": 10, "y": 0}}
// with an optional "area". Tools that take an axis accept "x" or "y" but
// reject both.
//
// # Frames
//
// Every image tool call is one frame and gets a fresh UUID, reported as
// frame_id and attached to debug logs. With track set, square tools fall back
// to the last square found and mark the result as held.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A square that cannot be reconstructed is not an error; the result carries
// found=false instead.
package server
