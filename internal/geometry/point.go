package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := float64(q.X - p.X)
	dy := float64(q.Y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Vec converts p to a floating point vector.
func (p Point) Vec() r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

// FromVec truncates v toward zero into a Point.
func FromVec(v r2.Point) Point {
	return Point{X: int(v.X), Y: int(v.Y)}
}
