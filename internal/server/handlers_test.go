package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImageFile writes a white PNG with the given black rectangles
// outlined and returns its path.
func createTestImageFile(t *testing.T, width, height int, outlines ...image.Rectangle) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, r := range outlines {
		for x := r.Min.X; x < r.Max.X; x++ {
			for d := 0; d < 3; d++ {
				img.Set(x, r.Min.Y+d, color.Black)
				img.Set(x, r.Max.Y-1-d, color.Black)
			}
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for d := 0; d < 3; d++ {
				img.Set(r.Min.X+d, y, color.Black)
				img.Set(r.Max.X-1-d, y, color.Black)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// callTool runs a tools/call request and decodes the text content.
func callTool(t *testing.T, s *Server, name string, args interface{}) map[string]interface{} {
	t.Helper()

	resp := s.handleRequest(toolRequest(t, name, args))
	require.NotNil(t, resp)
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	content, ok := result["content"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content[0]["text"].(string)), &out))
	return out
}

// callToolError runs a tools/call request that must fail and returns the error.
func callToolError(t *testing.T, s *Server, name string, args interface{}) *MCPError {
	t.Helper()

	resp := s.handleRequest(toolRequest(t, name, args))
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error, "expected %s to fail", name)
	return resp.Error
}

func toolRequest(t *testing.T, name string, args interface{}) *MCPRequest {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	require.NoError(t, err)
	return &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params}
}

func seg(x0, y0, x1, y1 int) map[string]interface{} {
	return map[string]interface{}{
		"p0": map[string]int{"x": x0, "y": y0},
		"p1": map[string]int{"x": x1, "y": y1},
	}
}

func pt(x, y int) map[string]int {
	return map[string]int{"x": x, "y": y}
}

// squareLines is a clean target whose corners are (100,100) and (300,300).
func squareLines() []interface{} {
	return []interface{}{
		seg(100, 100, 100, 300),
		seg(300, 100, 300, 300),
		seg(100, 100, 300, 100),
		seg(100, 300, 300, 300),
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: json.RawMessage(`[`)})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(t)

	e := callToolError(t, s, "line_bend", map[string]interface{}{})
	assert.Equal(t, -32000, e.Code)
	assert.Contains(t, e.Data, "unknown tool")
}

func TestToolResponse_UnencodableResult(t *testing.T) {
	s := newTestServer(t)

	resp := s.toolResponse(7, "line_measure", map[string]interface{}{"bad": make(chan int)})
	require.NotNil(t, resp.Error)
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, -32000, resp.Error.Code)
	assert.Contains(t, resp.Error.Data, "unsupported type")
	assert.Nil(t, resp.Result)
}

func TestLineMeasure(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_measure", map[string]interface{}{"line": seg(0, 0, 3, 4)})
	assert.Equal(t, 5.0, out["length"])
	assert.Equal(t, map[string]interface{}{"x": 1.0, "y": 2.0}, out["midpoint"])
	assert.InDelta(t, 1.3333, out["slope"], 1e-3)
	assert.Equal(t, true, out["vertical"])
	assert.Equal(t, false, out["horizontal"])

	out = callTool(t, s, "line_measure", map[string]interface{}{"line": seg(5, 0, 5, 10)})
	assert.Nil(t, out["slope"], "vertical slope has no value")
	assert.InDelta(t, 90, out["angle"], 1e-9)
}

func TestLineIntercept(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_intercept", map[string]interface{}{"line": seg(0, 0, 100, 50), "x": 40})
	assert.Equal(t, "x=40", out["axis"])
	assert.Equal(t, 20.0, out["value"])
	assert.Equal(t, true, out["found"])

	out = callTool(t, s, "line_intercept", map[string]interface{}{"line": seg(10, 0, 10, 100), "x": 0})
	assert.Equal(t, false, out["found"])

	e := callToolError(t, s, "line_intercept", map[string]interface{}{"line": seg(0, 0, 1, 1), "x": 1, "y": 2})
	assert.Contains(t, e.Data, "both")
}

func TestLineExtend(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_extend", map[string]interface{}{
		"line":        seg(100, 100, 200, 200),
		"horizontals": []int{400, 0},
	})
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, map[string]interface{}{
		"p0": map[string]interface{}{"x": 400.0, "y": 400.0},
		"p1": map[string]interface{}{"x": 0.0, "y": 0.0},
	}, out["line"])

	out = callTool(t, s, "line_extend", map[string]interface{}{"line": seg(40, 10, 40, 20), "to_frame": true})
	line := out["line"].(map[string]interface{})
	assert.Equal(t, 500.0, line["p0"].(map[string]interface{})["y"])

	callToolError(t, s, "line_extend", map[string]interface{}{"line": seg(0, 50, 100, 50), "horizontals": []int{0, 100}})
	callToolError(t, s, "line_extend", map[string]interface{}{"line": seg(0, 0, 10, 10)})
}

func TestLineSplit(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_split", map[string]interface{}{"line": seg(0, 0, 100, 0), "end": 1, "ratio": 0.25})
	first := out["first"].(map[string]interface{})
	assert.Equal(t, 75.0, first["p1"].(map[string]interface{})["x"])

	out = callTool(t, s, "line_split", map[string]interface{}{"line": seg(0, 0, 100, 0)})
	first = out["first"].(map[string]interface{})
	assert.Equal(t, 50.0, first["p1"].(map[string]interface{})["x"], "ratio defaults to half when absent")

	callToolError(t, s, "line_split", map[string]interface{}{"line": seg(0, 0, 10, 0), "ratio": 1.5})
	callToolError(t, s, "line_split", map[string]interface{}{"line": seg(0, 0, 100, 0), "ratio": 0})
}

func TestLineRotateAndMirror(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_rotate", map[string]interface{}{"line": seg(100, 100, 140, 100), "degrees": 0, "center": pt(0, 0)})
	line := out["line"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"x": 20.0, "y": 0.0}, line["p1"])

	out = callTool(t, s, "line_mirror", map[string]interface{}{"line": seg(10, 20, 30, 60), "x": 100})
	line = out["line"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"x": 190.0, "y": 20.0}, line["p0"])

	out = callTool(t, s, "line_mirror", map[string]interface{}{"line": seg(400, 100, 100, 400), "point": pt(200, 200)})
	line = out["line"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"x": 0.0, "y": 300.0}, line["p0"])

	callToolError(t, s, "line_mirror", map[string]interface{}{"line": seg(0, 0, 1, 1), "point": pt(0, 0), "x": 3})
}

func TestLineIntersect(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_intersect", map[string]interface{}{"a": seg(400, 100, 100, 400), "b": seg(200, 200, 300, 500)})
	assert.Equal(t, true, out["found"])
	assert.Equal(t, map[string]interface{}{"x": 225.0, "y": 275.0}, out["point"])

	out = callTool(t, s, "line_intersect", map[string]interface{}{"a": seg(10, 0, 10, 100), "b": seg(90, 0, 90, 100)})
	assert.Equal(t, false, out["found"])
	assert.NotContains(t, out, "point")
}

func TestLinePerpDistance(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_perp_distance", map[string]interface{}{"line": seg(0, 0, 0, 100), "point": pt(30, 50)})
	assert.InDelta(t, 30, out["distance"], 1e-9)

	out = callTool(t, s, "line_perp_distance", map[string]interface{}{"line": seg(0, 0, 0, 100), "other": seg(2, 0, 2, 100)})
	assert.InDelta(t, 2, out["distance"], 1e-9)

	callToolError(t, s, "line_perp_distance", map[string]interface{}{"line": seg(0, 0, 0, 100)})
}

func TestLinePassingBy(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "line_passing_by", map[string]interface{}{"point": pt(50, 50), "slope": 1, "frame_height": 100})
	line := out["line"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"x": 100.0, "y": 100.0}, line["p1"])

	out = callTool(t, s, "line_passing_by", map[string]interface{}{"point": pt(30, 70), "vertical": true})
	line = out["line"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"x": 30.0, "y": 500.0}, line["p1"], "frame height defaults to the configured frame")

	callToolError(t, s, "line_passing_by", map[string]interface{}{"point": pt(30, 70), "slope": 0})
	callToolError(t, s, "line_passing_by", map[string]interface{}{"point": pt(30, 70)})
}

func TestLinesClassify(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "lines_classify", map[string]interface{}{
		"lines": []interface{}{seg(10, 0, 10, 100), seg(0, 10, 100, 10), seg(5, 5, 5, 5)},
	})
	assert.Len(t, out["verticals"], 1)
	assert.Len(t, out["horizontals"], 1)

	steepFalling := []interface{}{seg(0, 100, 1, 0)}
	out = callTool(t, s, "lines_classify", map[string]interface{}{"lines": steepFalling})
	assert.Len(t, out["verticals"], 1)
	assert.Empty(t, out["horizontals"])

	out = callTool(t, s, "lines_classify", map[string]interface{}{"lines": steepFalling, "signed_slope": true})
	assert.Empty(t, out["verticals"])
	assert.Len(t, out["horizontals"], 1)
}

func TestLinesDedupe(t *testing.T) {
	s := newTestServer(t)
	lines := []interface{}{seg(10, 0, 10, 100), seg(12, 0, 12, 100), seg(200, 0, 200, 100)}

	out := callTool(t, s, "lines_dedupe", map[string]interface{}{"lines": lines})
	assert.Len(t, out["verticals"], 2)

	out = callTool(t, s, "lines_dedupe", map[string]interface{}{"lines": lines, "min_line_distance": 1})
	assert.Len(t, out["verticals"], 3)
}

func TestLinesExtremes(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "lines_extremes", map[string]interface{}{"lines": squareLines(), "axis": "x"})
	assert.Equal(t, true, out["complete"])
	left := out["min"].(map[string]interface{})
	assert.Equal(t, 100.0, left["p0"].(map[string]interface{})["x"])

	out = callTool(t, s, "lines_extremes", map[string]interface{}{"lines": []interface{}{seg(0, 10, 100, 10)}, "axis": "x"})
	assert.Equal(t, false, out["complete"])
	assert.Nil(t, out["min"])

	callToolError(t, s, "lines_extremes", map[string]interface{}{"lines": squareLines(), "axis": "z"})
}

func TestLinesFilter(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "lines_filter", map[string]interface{}{"lines": squareLines()})
	assert.Len(t, out["lines"], 4, "default chains keep all four boundaries")

	out = callTool(t, s, "lines_filter", map[string]interface{}{
		"lines":  squareLines(),
		"chains": [][]string{{"verticals"}},
	})
	assert.Len(t, out["lines"], 2)

	e := callToolError(t, s, "lines_filter", map[string]interface{}{
		"lines":  squareLines(),
		"chains": [][]string{{"diagonals"}},
	})
	assert.Contains(t, e.Data, "unknown filter operator")

	callToolError(t, s, "lines_filter", map[string]interface{}{"lines": squareLines(), "quantity": -1})
}

func TestSquareDetect(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "square_detect", map[string]interface{}{"lines": squareLines()})
	assert.Equal(t, true, out["found"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"x": 100.0, "y": 100.0},
		map[string]interface{}{"x": 100.0, "y": 300.0},
		map[string]interface{}{"x": 300.0, "y": 100.0},
		map[string]interface{}{"x": 300.0, "y": 300.0},
	}, out["corners"])
	assert.Equal(t, map[string]interface{}{"x": 200.0, "y": 200.0}, out["center"])

	out = callTool(t, s, "square_detect", map[string]interface{}{"lines": []interface{}{seg(100, 100, 100, 300)}})
	assert.Equal(t, false, out["found"])
	assert.Equal(t, []interface{}{}, out["corners"])
	assert.NotContains(t, out, "center")
}

func TestSquareDetect_Track(t *testing.T) {
	s := newTestServer(t)

	out := callTool(t, s, "square_detect", map[string]interface{}{"lines": squareLines(), "track": true})
	require.Equal(t, true, out["found"])

	out = callTool(t, s, "square_detect", map[string]interface{}{"lines": []interface{}{}, "track": true})
	assert.Equal(t, false, out["found"])
	assert.Equal(t, true, out["held"])
	assert.Len(t, out["corners"], 4)
	assert.Equal(t, 1, s.tracker.Misses())
}

func TestImageLoad(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 100, 80)

	out := callTool(t, s, "image_load", map[string]interface{}{"path": path})
	assert.Equal(t, 100.0, out["width"])
	assert.Equal(t, 80.0, out["height"])
	assert.Equal(t, "png", out["format"])

	callToolError(t, s, "image_load", map[string]interface{}{"path": filepath.Join(t.TempDir(), "missing.png")})
}

func TestImageSegments(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 300, 300, image.Rect(60, 60, 240, 240))

	out := callTool(t, s, "image_segments", map[string]interface{}{"path": path})
	assert.NotEmpty(t, out["frame_id"])
	assert.Equal(t, "hough", out["algorithm"])
	assert.NotEmpty(t, out["segments"])

	out = callTool(t, s, "image_segments", map[string]interface{}{"path": path, "algorithm": "contours"})
	assert.Equal(t, "contours", out["algorithm"])

	callToolError(t, s, "image_segments", map[string]interface{}{"path": path, "algorithm": "sift"})
}

func TestImageDetectLines(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 300, 300, image.Rect(60, 60, 240, 240))

	out := callTool(t, s, "image_detect_lines", map[string]interface{}{"path": path})
	assert.NotEmpty(t, out["frame_id"])
	assert.Greater(t, out["candidates"], 0.0)
	assert.NotEmpty(t, out["lines"])
}

func TestImageDetectSquare(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 300, 300, image.Rect(60, 60, 240, 240))

	out := callTool(t, s, "image_detect_square", map[string]interface{}{"path": path})
	require.Equal(t, true, out["found"], "outlined square should be found: %v", out)
	assert.NotEmpty(t, out["frame_id"])

	center := out["center"].(map[string]interface{})
	assert.InDelta(t, 150, center["x"], 25)
	assert.InDelta(t, 150, center["y"], 25)

	blank := createTestImageFile(t, 120, 120)
	out = callTool(t, s, "image_detect_square", map[string]interface{}{"path": blank})
	assert.Equal(t, false, out["found"])
}

func TestImageDetectSquare_Region(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 400, 300, image.Rect(40, 40, 160, 160), image.Rect(250, 60, 380, 240))

	out := callTool(t, s, "image_detect_square", map[string]interface{}{
		"path":   path,
		"region": map[string]int{"x1": 200, "y1": 0, "x2": 400, "y2": 300},
	})
	require.Equal(t, true, out["found"], "%v", out)
	center := out["center"].(map[string]interface{})
	assert.InDelta(t, 315, center["x"], 25, "only the right-hand square is inside the region")

	e := callToolError(t, s, "image_segments", map[string]interface{}{
		"path":   path,
		"region": map[string]int{"x1": 0, "y1": 0, "x2": 500, "y2": 300},
	})
	assert.Contains(t, e.Data, "invalid region")
}
