package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/google/uuid"

	"github.com/ironsheep/line-tools-mcp/internal/detection"
	"github.com/ironsheep/line-tools-mcp/internal/geometry"
	"github.com/ironsheep/line-tools-mcp/internal/segments"
)

// errMissingArgument is returned when a tool needs one of several optional
// arguments and none was supplied.
var errMissingArgument = errors.New("missing argument")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "line_intersect", "square_detect").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return s.toolResponse(req.ID, params.Name, result)
}

// toolResponse wraps a tool result as MCP text content. A result that cannot
// be encoded is reported as a tool execution failure.
func (s *Server) toolResponse(id interface{}, tool string, result interface{}) *MCPResponse {
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode tool result", "tool", tool, "err", err)
		return s.errorResponse(id, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(text),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Single line operations
	case "line_measure":
		return s.handleLineMeasure(args)
	case "line_intercept":
		return s.handleLineIntercept(args)
	case "line_extend":
		return s.handleLineExtend(args)
	case "line_split":
		return s.handleLineSplit(args)
	case "line_rotate":
		return s.handleLineRotate(args)
	case "line_mirror":
		return s.handleLineMirror(args)
	case "line_intersect":
		return s.handleLineIntersect(args)
	case "line_perp_distance":
		return s.handleLinePerpDistance(args)
	case "line_passing_by":
		return s.handleLinePassingBy(args)

	// Line set operations
	case "lines_classify":
		return s.handleLinesClassify(args)
	case "lines_dedupe":
		return s.handleLinesDedupe(args)
	case "lines_extremes":
		return s.handleLinesExtremes(args)
	case "lines_filter":
		return s.handleLinesFilter(args)
	case "square_detect":
		return s.handleSquareDetect(args)

	// Image input
	case "image_load":
		return s.handleImageLoad(args)
	case "image_segments":
		return s.handleImageSegments(args)
	case "image_detect_lines":
		return s.handleImageDetectLines(args)
	case "image_detect_square":
		return s.handleImageDetectSquare(args)

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

// === Single Line Handlers ===

type lineArgs struct {
	Line geometry.Line `json:"line"`
}

type lineResult struct {
	Line geometry.Line `json:"line"`
}

type measureResult struct {
	Length     float64        `json:"length"`
	Angle      float64        `json:"angle"`
	Slope      *float64       `json:"slope"`
	Midpoint   geometry.Point `json:"midpoint"`
	Vertical   bool           `json:"vertical"`
	Horizontal bool           `json:"horizontal"`
	Degenerate bool           `json:"degenerate"`
}

func (s *Server) handleLineMeasure(args json.RawMessage) (interface{}, error) {
	var a lineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	l := a.Line
	r := measureResult{
		Length:     l.Length(),
		Angle:      l.Angle(),
		Midpoint:   l.Midpoint(),
		Vertical:   l.IsVertical(s.cfg.Classification),
		Horizontal: l.IsHorizontal(s.cfg.Classification),
		Degenerate: l.IsDegenerate(),
	}
	if m, ok := l.Slope().Value(); ok {
		r.Slope = &m
	}
	return r, nil
}

type lineAxisArgs struct {
	Line geometry.Line `json:"line"`
	X    *int          `json:"x"`
	Y    *int          `json:"y"`
}

func (s *Server) handleLineIntercept(args json.RawMessage) (interface{}, error) {
	var a lineAxisArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	axis, err := geometry.AxisFrom(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	v, ok := a.Line.Intercept(axis)
	return map[string]interface{}{
		"axis":  axis.String(),
		"value": v,
		"found": ok,
	}, nil
}

type lineExtendArgs struct {
	Line        geometry.Line `json:"line"`
	Horizontals *[2]int       `json:"horizontals"`
	Verticals   *[2]int       `json:"verticals"`
	ToFrame     bool          `json:"to_frame"`
}

func (s *Server) handleLineExtend(args json.RawMessage) (interface{}, error) {
	var a lineExtendArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		out     geometry.Line
		changed bool
		err     error
	)
	if a.ToFrame {
		out, changed, err = a.Line.ExtendToFrame(s.cfg.Frame, s.cfg.Classification)
	} else {
		var e geometry.Extent
		if e, err = geometry.ExtentFrom(a.Horizontals, a.Verticals); err != nil {
			return nil, err
		}
		out, changed, err = a.Line.Extend(e)
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"line":    out,
		"changed": changed,
	}, nil
}

type lineSplitArgs struct {
	Line  geometry.Line `json:"line"`
	End   int           `json:"end"`
	Ratio *float64      `json:"ratio"`
}

func (s *Server) handleLineSplit(args json.RawMessage) (interface{}, error) {
	var a lineSplitArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ratio := 0.5
	if a.Ratio != nil {
		ratio = *a.Ratio
	}
	first, second, err := a.Line.Split(a.End, ratio)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"first":  first,
		"second": second,
	}, nil
}

type lineRotateArgs struct {
	Line    geometry.Line   `json:"line"`
	Degrees float64         `json:"degrees"`
	Center  *geometry.Point `json:"center"`
}

func (s *Server) handleLineRotate(args json.RawMessage) (interface{}, error) {
	var a lineRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	center := a.Line.Midpoint()
	if a.Center != nil {
		center = *a.Center
	}
	return lineResult{Line: a.Line.Rotate(center, a.Degrees)}, nil
}

type lineMirrorArgs struct {
	Line  geometry.Line   `json:"line"`
	X     *int            `json:"x"`
	Y     *int            `json:"y"`
	Point *geometry.Point `json:"point"`
}

func (s *Server) handleLineMirror(args json.RawMessage) (interface{}, error) {
	var a lineMirrorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Point != nil {
		if a.X != nil || a.Y != nil {
			return nil, geometry.ErrAxisConflict
		}
		return lineResult{Line: a.Line.MirrorAbout(*a.Point)}, nil
	}
	axis, err := geometry.AxisFrom(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return lineResult{Line: a.Line.Mirror(axis)}, nil
}

type linePairArgs struct {
	A geometry.Line `json:"a"`
	B geometry.Line `json:"b"`
}

func (s *Server) handleLineIntersect(args json.RawMessage) (interface{}, error) {
	var a linePairArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, ok := a.A.Intersect(a.B)
	result := map[string]interface{}{"found": ok}
	if ok {
		result["point"] = p
	}
	return result, nil
}

type perpDistanceArgs struct {
	Line  geometry.Line   `json:"line"`
	Point *geometry.Point `json:"point"`
	Other *geometry.Line  `json:"other"`
}

func (s *Server) handleLinePerpDistance(args json.RawMessage) (interface{}, error) {
	var a perpDistanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch {
	case a.Point != nil && a.Other != nil:
		return nil, errors.New("give point or other, not both")
	case a.Point != nil:
		return map[string]float64{"distance": a.Line.PerpDistance(*a.Point)}, nil
	case a.Other != nil:
		return map[string]float64{"distance": a.Line.PerpDistanceTo(*a.Other)}, nil
	}
	return nil, fmt.Errorf("%w: point or other", errMissingArgument)
}

type passingByArgs struct {
	Point       *geometry.Point `json:"point"`
	Slope       *float64        `json:"slope"`
	Vertical    bool            `json:"vertical"`
	FrameHeight int             `json:"frame_height"`
}

func (s *Server) handleLinePassingBy(args json.RawMessage) (interface{}, error) {
	var a passingByArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Point == nil {
		return nil, fmt.Errorf("%w: point", errMissingArgument)
	}
	if a.FrameHeight == 0 {
		a.FrameHeight = s.cfg.Frame.Height
	}

	var slope geometry.Slope
	switch {
	case a.Vertical:
		slope = geometry.VerticalSlope()
	case a.Slope != nil:
		slope = geometry.SlopeOf(*a.Slope)
	default:
		return nil, fmt.Errorf("%w: slope or vertical", errMissingArgument)
	}

	l, err := geometry.PassingBy(*a.Point, slope, a.FrameHeight)
	if err != nil {
		return nil, err
	}
	return lineResult{Line: l}, nil
}

// === Line Set Handlers ===

type linesClassifyArgs struct {
	Lines               []geometry.Line `json:"lines"`
	VerticalTolerance   *float64        `json:"vertical_tolerance"`
	HorizontalTolerance *float64        `json:"horizontal_tolerance"`
	SignedSlope         *bool           `json:"signed_slope"`
}

func (s *Server) handleLinesClassify(args json.RawMessage) (interface{}, error) {
	var a linesClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tol := s.cfg.Classification
	if a.VerticalTolerance != nil {
		tol.Vertical = *a.VerticalTolerance
	}
	if a.HorizontalTolerance != nil {
		tol.Horizontal = *a.HorizontalTolerance
	}
	if a.SignedSlope != nil {
		tol.Signed = *a.SignedSlope
	}
	return detection.Classify(a.Lines, tol), nil
}

type linesDedupeArgs struct {
	Lines           []geometry.Line `json:"lines"`
	MinLineDistance *float64        `json:"min_line_distance"`
}

func (s *Server) handleLinesDedupe(args json.RawMessage) (interface{}, error) {
	var a linesDedupeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	e := *s.detector.Eliminator()
	if a.MinLineDistance != nil {
		e.MinLineDistance = *a.MinLineDistance
	}
	return e.Eliminate(a.Lines), nil
}

type linesExtremesArgs struct {
	Lines  []geometry.Line `json:"lines"`
	Axis   string          `json:"axis"`
	Margin *int            `json:"margin"`
}

func (s *Server) handleLinesExtremes(args json.RawMessage) (interface{}, error) {
	var a linesExtremesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sel := s.detector.Selector()
	if a.Margin != nil {
		sel.Margin = *a.Margin
	}

	var ex detection.Extremes
	switch strings.ToLower(a.Axis) {
	case "x":
		ex = sel.XExtremes(a.Lines)
	case "y":
		ex = sel.YExtremes(a.Lines)
	default:
		return nil, fmt.Errorf("axis must be x or y, got %q", a.Axis)
	}
	return map[string]interface{}{
		"min":      ex.Min,
		"max":      ex.Max,
		"complete": ex.Complete(),
	}, nil
}

type linesFilterArgs struct {
	Lines    []geometry.Line `json:"lines"`
	Chains   [][]string      `json:"chains"`
	Quantity *int            `json:"quantity"`
}

func (s *Server) handleLinesFilter(args json.RawMessage) (interface{}, error) {
	var a linesFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Chains == nil && a.Quantity == nil {
		lines, err := s.detector.Lines(a.Lines)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"lines": lines}, nil
	}

	p := detection.Pipeline{Quantity: s.cfg.Filter.Quantity, Selector: s.detector.Selector()}
	names := s.cfg.Filter.Chains
	if a.Chains != nil {
		names = a.Chains
	}
	for i, n := range names {
		chain, err := detection.ParseChain(n)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
		p.Chains = append(p.Chains, chain)
	}
	if a.Quantity != nil {
		p.Quantity = *a.Quantity
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	lines, err := p.Run(s.detector.Eliminator().Eliminate(a.Lines))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"lines": lines}, nil
}

type squareDetectArgs struct {
	Lines []geometry.Line `json:"lines"`
	Track bool            `json:"track"`
}

type squareResult struct {
	FrameID string           `json:"frame_id,omitempty"`
	Found   bool             `json:"found"`
	Corners []geometry.Point `json:"corners"`
	Center  *geometry.Point  `json:"center,omitempty"`

	// Held is set when the corners come from an earlier frame.
	Held bool `json:"held,omitempty"`
}

func (s *Server) handleSquareDetect(args json.RawMessage) (interface{}, error) {
	var a squareDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sq, found := s.detector.Square(a.Lines)
	return s.buildSquareResult(sq, found, a.Track), nil
}

func (s *Server) buildSquareResult(sq detection.Square, found, track bool) squareResult {
	r := squareResult{Found: found, Corners: sq.Corners}
	if track {
		last, ok := s.tracker.Observe(sq, found)
		if ok && !found {
			sq = last
			r.Corners = last.Corners
			r.Held = true
		}
	}
	if c, ok := sq.Center(); ok {
		r.Center = &c
	}
	if r.Corners == nil {
		r.Corners = []geometry.Point{}
	}
	return r
}

// === Image Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Info(a.Path)
}

type imageSegmentsArgs struct {
	Path      string           `json:"path"`
	Algorithm string           `json:"algorithm"`
	MinLength int              `json:"min_length"`
	Region    *segments.Region `json:"region"`
	Track     bool             `json:"track"`
}

// extract loads the image and runs the configured segment source over it,
// with any per-call overrides applied.
func (s *Server) extract(a imageSegmentsArgs) (string, segments.Algorithm, []geometry.Line, error) {
	opts := s.cfg.Segments
	if a.Algorithm != "" {
		alg, err := segments.ParseAlgorithm(a.Algorithm)
		if err != nil {
			return "", "", nil, err
		}
		opts.Algorithm = alg
	}
	if a.MinLength > 0 {
		opts.MinLength = a.MinLength
	}
	src, err := segments.New(opts)
	if err != nil {
		return "", "", nil, err
	}

	var img image.Image
	if img, err = s.cache.Load(a.Path); err != nil {
		return "", "", nil, err
	}
	var lines []geometry.Line
	if a.Region != nil {
		lines, err = segments.Within(src, img, *a.Region)
	} else {
		lines, err = src.Segments(img)
	}
	if err != nil {
		return "", "", nil, err
	}

	frameID := uuid.NewString()
	s.logger.Debug("extracted segments", "frame", frameID, "path", a.Path, "algorithm", opts.Algorithm, "count", len(lines))
	return frameID, opts.Algorithm, lines, nil
}

func (s *Server) handleImageSegments(args json.RawMessage) (interface{}, error) {
	var a imageSegmentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	frameID, alg, lines, err := s.extract(a)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"frame_id":  frameID,
		"algorithm": alg,
		"segments":  lines,
	}, nil
}

func (s *Server) handleImageDetectLines(args json.RawMessage) (interface{}, error) {
	var a imageSegmentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	frameID, alg, raw, err := s.extract(a)
	if err != nil {
		return nil, err
	}
	lines, err := s.detector.Lines(raw)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"frame_id":   frameID,
		"algorithm":  alg,
		"candidates": len(raw),
		"lines":      lines,
	}, nil
}

func (s *Server) handleImageDetectSquare(args json.RawMessage) (interface{}, error) {
	var a imageSegmentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	frameID, _, raw, err := s.extract(a)
	if err != nil {
		return nil, err
	}
	sq, found := s.detector.Square(raw)
	r := s.buildSquareResult(sq, found, a.Track)
	r.FrameID = frameID
	return r, nil
}
