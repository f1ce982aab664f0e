package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Intersect returns the crossing point of the two infinite lines through l
// and o.
//
// ok is false when the slopes are exactly equal; callers that need to reject
// nearly parallel pairs must filter them beforehand. A vertical member is
// solved through its x coordinate.
func (l Line) Intersect(o Line) (Point, bool) {
	if l.IsDegenerate() || o.IsDegenerate() {
		return Point{}, false
	}
	s1, s2 := l.Slope(), o.Slope()
	if s1.Equal(s2) {
		return Point{}, false
	}

	switch {
	case s1.IsVertical():
		y, _ := o.intercept(AtX(l.P0.X))
		return FromVec(r2.Point{X: float64(l.P0.X), Y: y}), true
	case s2.IsVertical():
		y, _ := l.intercept(AtX(o.P0.X))
		return FromVec(r2.Point{X: float64(o.P0.X), Y: y}), true
	}

	m1, _ := s1.Value()
	m2, _ := s2.Value()
	b1, _ := l.intercept(AtX(0))
	b2, _ := o.intercept(AtX(0))

	// Both coordinates are written so that swapping l and o only negates
	// numerator and denominator, keeping the result identical.
	x := (b2 - b1) / (m1 - m2)
	y := (m1*b2 - m2*b1) / (m1 - m2)
	return FromVec(r2.Point{X: x, Y: y}), true
}

// PerpDistance returns the perpendicular distance from pt to the infinite
// line through l.
//
// It solves the triangle pt, P0, P1 with the law of cosines and takes
// l1·sin(θ). When pt sits on P0 or the line is degenerate the distance is 0.
func (l Line) PerpDistance(pt Point) float64 {
	l1 := pt.Distance(l.P0)
	l2 := pt.Distance(l.P1)
	l3 := l.Length()
	if l1 == 0 || l3 == 0 {
		return 0
	}
	cos := (l1*l1 + l3*l3 - l2*l2) / (2 * l1 * l3)
	cos = math.Max(-1, math.Min(1, cos))
	return l1 * math.Sin(math.Acos(cos))
}

// PerpDistanceTo returns the perpendicular distance from o's midpoint to l.
func (l Line) PerpDistanceTo(o Line) float64 {
	return l.PerpDistance(o.Midpoint())
}
