package geometry

import "fmt"

// AxisKind distinguishes lines of constant x from lines of constant y.
type AxisKind int

const (
	// XAxis is the vertical line x = Value.
	XAxis AxisKind = iota
	// YAxis is the horizontal line y = Value.
	YAxis
)

// Axis is an axis-parallel line, x = Value or y = Value.
type Axis struct {
	Kind  AxisKind
	Value int
}

// AtX returns the vertical axis x = v.
func AtX(v int) Axis { return Axis{Kind: XAxis, Value: v} }

// AtY returns the horizontal axis y = v.
func AtY(v int) Axis { return Axis{Kind: YAxis, Value: v} }

// AxisFrom builds an Axis from optional x and y values, as decoded from a
// request. Exactly one must be set.
func AxisFrom(x, y *int) (Axis, error) {
	switch {
	case x != nil && y != nil:
		return Axis{}, ErrAxisConflict
	case x != nil:
		return AtX(*x), nil
	case y != nil:
		return AtY(*y), nil
	default:
		return Axis{}, ErrAxisMissing
	}
}

func (a Axis) String() string {
	if a.Kind == XAxis {
		return fmt.Sprintf("x=%d", a.Value)
	}
	return fmt.Sprintf("y=%d", a.Value)
}

// Extent is a pair of parallel axes a line can be extended (or clipped) to.
type Extent struct {
	Kind AxisKind
	A, B int
}

// Horizontals returns the extent bounded by the rows y=a and y=b.
func Horizontals(a, b int) Extent { return Extent{Kind: YAxis, A: a, B: b} }

// Verticals returns the extent bounded by the columns x=a and x=b.
func Verticals(a, b int) Extent { return Extent{Kind: XAxis, A: a, B: b} }

// ExtentFrom builds an Extent from optional horizontal and vertical axis
// pairs, as decoded from a request. Exactly one pair must be set.
func ExtentFrom(horizontals, verticals *[2]int) (Extent, error) {
	switch {
	case horizontals != nil && verticals != nil:
		return Extent{}, ErrAxisConflict
	case horizontals != nil:
		return Horizontals(horizontals[0], horizontals[1]), nil
	case verticals != nil:
		return Verticals(verticals[0], verticals[1]), nil
	default:
		return Extent{}, ErrAxisMissing
	}
}

// normalized returns the extent with A <= B.
func (e Extent) normalized() Extent {
	if e.A > e.B {
		e.A, e.B = e.B, e.A
	}
	return e
}

// Frame is the pixel area lines are extended to by default.
type Frame struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// DefaultFrame is the canonical boundary used by ExtendToFrame.
var DefaultFrame = Frame{Width: 500, Height: 500}
