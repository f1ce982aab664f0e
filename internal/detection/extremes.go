package detection

import "github.com/ironsheep/line-tools-mcp/internal/geometry"

// DefaultMargin is how far, in pixels, a candidate must lie beyond the current
// extreme before it replaces it. Near-tied detections therefore keep the first
// line seen instead of flapping between frames.
const DefaultMargin = 10

// Extremes holds the boundary lines along one axis.
//
// For XExtremes, Min is the leftmost and Max the rightmost vertical line.
// For YExtremes, Min is the topmost and Max the bottommost horizontal line.
// Either may be nil when no line qualifies.
type Extremes struct {
	Min *geometry.Line `json:"min"`
	Max *geometry.Line `json:"max"`
}

// Complete reports whether both boundary lines were found.
func (e Extremes) Complete() bool {
	return e.Min != nil && e.Max != nil
}

// Lines returns the boundary lines that were found, Min first.
func (e Extremes) Lines() []geometry.Line {
	result := make([]geometry.Line, 0, 2)
	if e.Min != nil {
		result = append(result, *e.Min)
	}
	if e.Max != nil {
		result = append(result, *e.Max)
	}
	return result
}

// Selector picks extremal lines.
type Selector struct {
	// Margin is the replacement margin, see DefaultMargin.
	Margin int

	// Tolerance decides which lines count as vertical or horizontal.
	Tolerance geometry.Tolerance

	// LegacyBottommostX compares P0.X instead of P0.Y when looking for the
	// bottommost horizontal line. Earlier releases of the detector did this;
	// it is kept only for callers that depend on the old selection.
	LegacyBottommostX bool
}

// NewSelector returns a Selector with DefaultMargin.
func NewSelector(tol geometry.Tolerance) Selector {
	return Selector{Margin: DefaultMargin, Tolerance: tol}
}

// XExtremes returns the leftmost and rightmost vertical lines, compared by
// the x coordinate of P0.
func (s Selector) XExtremes(lines []geometry.Line) Extremes {
	var ex Extremes
	for _, l := range lines {
		if !l.IsVertical(s.Tolerance) {
			continue
		}
		line := l
		if ex.Min == nil || line.P0.X < ex.Min.P0.X-s.Margin {
			ex.Min = &line
		}
		if ex.Max == nil || line.P0.X > ex.Max.P0.X+s.Margin {
			ex.Max = &line
		}
	}
	return ex
}

// YExtremes returns the topmost and bottommost horizontal lines, compared by
// the y coordinate of P0.
func (s Selector) YExtremes(lines []geometry.Line) Extremes {
	var ex Extremes
	for _, l := range lines {
		if !l.IsHorizontal(s.Tolerance) {
			continue
		}
		line := l
		if ex.Min == nil || line.P0.Y < ex.Min.P0.Y-s.Margin {
			ex.Min = &line
		}
		if ex.Max == nil || s.below(line, *ex.Max) {
			ex.Max = &line
		}
	}
	return ex
}

func (s Selector) below(candidate, current geometry.Line) bool {
	if s.LegacyBottommostX {
		return candidate.P0.X > current.P0.X+s.Margin
	}
	return candidate.P0.Y > current.P0.Y+s.Margin
}
