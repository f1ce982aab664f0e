package geometry

import (
	"fmt"
	"math"
)

// Tolerance holds the slope thresholds used to classify lines.
//
// A line is vertical when |m| >= Vertical and horizontal when |m| <= Horizontal.
// Callers that need an exhaustive partition must pick values that make the
// two predicates complementary; the default of 1 for both deliberately lets a
// 45 degree line satisfy both.
//
// Signed compares the signed slope instead of |m|. Every falling line then
// counts as horizontal however steep it is, which is the legacy behaviour.
type Tolerance struct {
	Vertical   float64 `json:"vertical" toml:"vertical_tolerance"`
	Horizontal float64 `json:"horizontal" toml:"horizontal_tolerance"`
	Signed     bool    `json:"signed,omitempty" toml:"signed_slope"`
}

// steepness is the quantity compared against the thresholds: |m|, or the
// signed m when t.Signed. A vertical slope is +Inf in both modes.
func (t Tolerance) steepness(s Slope) float64 {
	if m, ok := s.Value(); ok && t.Signed {
		return m
	}
	return s.Magnitude()
}

// DefaultTolerance is the classification tolerance used when none is configured.
var DefaultTolerance = Tolerance{Vertical: 1, Horizontal: 1}

// Line is a segment between two integer endpoints.
//
// P0 and P1 are order-significant for Split, Rotate and extremal selection.
// Area is the area of the contour the segment was fitted to; zero means the
// segment carries no area.
type Line struct {
	P0   Point   `json:"p0"`
	P1   Point   `json:"p1"`
	Area float64 `json:"area,omitempty"`
}

// New returns the line from p0 to p1.
func New(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// NewWithArea returns the line from p0 to p1 tagged with a contour area.
func NewWithArea(p0, p1 Point, area float64) Line {
	return Line{P0: p0, P1: p1, Area: area}
}

// Segment is shorthand for New(Point{x0, y0}, Point{x1, y1}).
func Segment(x0, y0, x1, y1 int) Line {
	return Line{P0: Point{X: x0, Y: y0}, P1: Point{X: x1, Y: y1}}
}

// PassingBy constructs the line through pt with the given slope, clipped to
// the frame rows y=0 and y=frameHeight.
//
// A zero slope never reaches either row and yields ErrParallel.
func PassingBy(pt Point, slope Slope, frameHeight int) (Line, error) {
	if slope.IsVertical() {
		return Segment(pt.X, 0, pt.X, frameHeight), nil
	}
	m, _ := slope.Value()
	if m == 0 {
		return Line{}, fmt.Errorf("passing by %v with slope 0: %w", pt, ErrParallel)
	}
	x, y := float64(pt.X), float64(pt.Y)
	h := float64(frameHeight)
	top := Point{X: int(x - y/m), Y: 0}
	bottom := Point{X: int(x - (y-h)/m), Y: frameHeight}
	return New(top, bottom), nil
}

// String formats the line as "(x0,y0)-(x1,y1)".
func (l Line) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", l.P0.X, l.P0.Y, l.P1.X, l.P1.Y)
}

// IsDegenerate reports whether both endpoints coincide.
func (l Line) IsDegenerate() bool {
	return l.P0 == l.P1
}

// Reverse returns the line with its endpoints swapped.
func (l Line) Reverse() Line {
	return Line{P0: l.P1, P1: l.P0, Area: l.Area}
}

// Slope returns (y1-y0)/(x1-x0), or a vertical slope when x1 == x0.
func (l Line) Slope() Slope {
	dx := l.P1.X - l.P0.X
	if dx == 0 {
		return VerticalSlope()
	}
	return SlopeOf(float64(l.P1.Y-l.P0.Y) / float64(dx))
}

// AngleRadians returns the direction of P0→P1 in [0, 2π).
//
// The absolute angle of the slope is folded into the quadrant given by the
// signs of the endpoint deltas. A degenerate line has angle 0.
func (l Line) AngleRadians() float64 {
	if l.IsDegenerate() {
		return 0
	}
	dx := l.P1.X - l.P0.X
	dy := l.P1.Y - l.P0.Y

	abs := math.Pi / 2
	if m, ok := l.Slope().Value(); ok {
		abs = math.Abs(math.Atan(m))
	}

	switch {
	case dx >= 0 && dy >= 0:
		return abs
	case dx >= 0:
		return 2*math.Pi - abs
	case dy >= 0:
		return math.Pi - abs
	default:
		return math.Pi + abs
	}
}

// Angle returns the direction of P0→P1 in degrees, in [0, 360).
func (l Line) Angle() float64 {
	return l.AngleRadians() * 180 / math.Pi
}

// Length returns the Euclidean distance between the endpoints.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// Midpoint returns the integer-truncated average of the endpoints.
func (l Line) Midpoint() Point {
	return Point{X: (l.P0.X + l.P1.X) / 2, Y: (l.P0.Y + l.P1.Y) / 2}
}

// IsVertical reports whether the line is steep enough to count as vertical.
func (l Line) IsVertical(tol Tolerance) bool {
	if l.IsDegenerate() {
		return false
	}
	return tol.steepness(l.Slope()) >= tol.Vertical
}

// IsHorizontal reports whether the line is flat enough to count as horizontal.
func (l Line) IsHorizontal(tol Tolerance) bool {
	if l.IsDegenerate() {
		return false
	}
	return tol.steepness(l.Slope()) <= tol.Horizontal
}
