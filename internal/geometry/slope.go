package geometry

import (
	"math"
	"strconv"
)

// Slope is the tagged slope of a line: either vertical or a finite value.
//
// The zero value is a horizontal (0) slope.
type Slope struct {
	value    float64
	vertical bool
}

// VerticalSlope returns the slope of a line with no horizontal extent.
func VerticalSlope() Slope {
	return Slope{vertical: true}
}

// SlopeOf returns a finite slope. Infinite inputs are treated as vertical.
func SlopeOf(v float64) Slope {
	if math.IsInf(v, 0) {
		return VerticalSlope()
	}
	return Slope{value: v}
}

// IsVertical reports whether the slope is undefined (Δx == 0).
func (s Slope) IsVertical() bool {
	return s.vertical
}

// Value returns the finite slope and true, or 0 and false for a vertical slope.
func (s Slope) Value() (float64, bool) {
	if s.vertical {
		return 0, false
	}
	return s.value, true
}

// Magnitude returns |m|, or +Inf for a vertical slope.
func (s Slope) Magnitude() float64 {
	if s.vertical {
		return math.Inf(1)
	}
	return math.Abs(s.value)
}

// Equal reports exact equality. Two vertical slopes are equal.
func (s Slope) Equal(o Slope) bool {
	if s.vertical || o.vertical {
		return s.vertical == o.vertical
	}
	return s.value == o.value
}

// String returns "vertical" or the formatted value.
func (s Slope) String() string {
	if s.vertical {
		return "vertical"
	}
	return strconv.FormatFloat(s.value, 'g', -1, 64)
}
