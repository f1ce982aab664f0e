package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Intercept returns where the line crosses the given axis: the y value at
// x = a.Value for an x axis, or the x value at y = a.Value for a y axis.
//
// ok is false when the line runs parallel to the axis. The two-point form is
// used so vertical lines still answer y-axis queries.
func (l Line) Intercept(a Axis) (value int, ok bool) {
	v, ok := l.intercept(a)
	return int(v), ok
}

func (l Line) intercept(a Axis) (float64, bool) {
	x1, y1 := float64(l.P0.X), float64(l.P0.Y)
	x2, y2 := float64(l.P1.X), float64(l.P1.Y)
	v := float64(a.Value)

	if a.Kind == YAxis {
		if y2-y1 == 0 {
			return 0, false
		}
		return (x2-x1)*(v-y2)/(y2-y1) + x2, true
	}
	if x2-x1 == 0 {
		return 0, false
	}
	return (y2-y1)*(v-x2)/(x2-x1) + y2, true
}

// Extend recomputes the endpoints as the line's crossings with the two axes
// of e. It also clips when e lies inside the current span.
//
// The crossing with the larger axis becomes P0. If the line already spans
// exactly the two axes it is returned unchanged with changed=false. A line
// parallel to the axis family yields ErrParallel.
func (l Line) Extend(e Extent) (out Line, changed bool, err error) {
	e = e.normalized()

	if e.Kind == YAxis {
		if l.P0.Y == l.P1.Y {
			return l, false, fmt.Errorf("extend %v to rows %d,%d: %w", l, e.A, e.B, ErrParallel)
		}
		if spans(l.P0.Y, l.P1.Y, e.A, e.B) {
			return l, false, nil
		}
		xa, _ := l.Intercept(AtY(e.A))
		xb, _ := l.Intercept(AtY(e.B))
		return Line{P0: Point{X: xb, Y: e.B}, P1: Point{X: xa, Y: e.A}, Area: l.Area}, true, nil
	}

	if l.P0.X == l.P1.X {
		return l, false, fmt.Errorf("extend %v to columns %d,%d: %w", l, e.A, e.B, ErrParallel)
	}
	if spans(l.P0.X, l.P1.X, e.A, e.B) {
		return l, false, nil
	}
	ya, _ := l.Intercept(AtX(e.A))
	yb, _ := l.Intercept(AtX(e.B))
	return Line{P0: Point{X: e.B, Y: yb}, P1: Point{X: e.A, Y: ya}, Area: l.Area}, true, nil
}

func spans(v0, v1, a, b int) bool {
	return (v0 == a && v1 == b) || (v0 == b && v1 == a)
}

// ExtendToFrame extends a horizontal line across the frame's width and any
// other line across its height.
func (l Line) ExtendToFrame(f Frame, tol Tolerance) (Line, bool, error) {
	if l.IsHorizontal(tol) {
		return l.Extend(Verticals(0, f.Width))
	}
	return l.Extend(Horizontals(0, f.Height))
}

// Split divides the line at ratio, measured from endpoint end (0 or 1).
//
// The pieces are P0→split and split→P1 regardless of end; end only selects
// which endpoint the interpolation starts from.
func (l Line) Split(end int, ratio float64) (Line, Line, error) {
	if !(ratio > 0 && ratio < 1) {
		return Line{}, Line{}, fmt.Errorf("split at %g: %w", ratio, ErrSplitRatio)
	}
	var from, to Point
	switch end {
	case 0:
		from, to = l.P0, l.P1
	case 1:
		from, to = l.P1, l.P0
	default:
		return Line{}, Line{}, fmt.Errorf("split from end %d: %w", end, ErrSplitEnd)
	}

	at := Point{
		X: int(float64(from.X) + float64(to.X-from.X)*ratio),
		Y: int(float64(from.Y) + float64(to.Y-from.Y)*ratio),
	}
	return New(l.P0, at), New(at, l.P1), nil
}

// Rotate places the line's endpoints at half its length from center, P1
// along angle+degrees and P0 opposite it. A line not centered on center is
// therefore translated as well as turned.
func (l Line) Rotate(center Point, degrees float64) Line {
	half := l.Length() / 2
	base := l.Angle()
	c := center.Vec()

	at := func(deg float64) Point {
		rad := math.Mod(deg, 360) * math.Pi / 180
		return FromVec(c.Add(r2.Point{X: math.Cos(rad), Y: math.Sin(rad)}.Mul(half)))
	}
	return Line{
		P0:   at(base + 180 + degrees),
		P1:   at(base + degrees),
		Area: l.Area,
	}
}

// Mirror reflects the line across the axis a.
func (l Line) Mirror(a Axis) Line {
	reflect := func(p Point) Point {
		if a.Kind == XAxis {
			p.X = 2*a.Value - p.X
		} else {
			p.Y = 2*a.Value - p.Y
		}
		return p
	}
	return Line{P0: reflect(l.P0), P1: reflect(l.P1), Area: l.Area}
}

// MirrorAbout reflects the line through the point p. The result is parallel
// to the original.
func (l Line) MirrorAbout(p Point) Line {
	return l.Mirror(AtX(p.X)).Mirror(AtY(p.Y))
}

// Translate shifts both endpoints by d.
func (l Line) Translate(d Point) Line {
	return Line{
		P0:   Point{X: l.P0.X + d.X, Y: l.P0.Y + d.Y},
		P1:   Point{X: l.P1.X + d.X, Y: l.P1.Y + d.Y},
		Area: l.Area,
	}
}
