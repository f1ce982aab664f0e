// Package geometry provides the line segment primitive used by the detection
// pipeline.
//
// A Line is a value: two integer endpoints plus an optional contour area.
// Every derived quantity (slope, angle, length, midpoint) is computed on
// demand, and every transformation (extend, split, rotate, mirror) returns a
// new Line without touching the receiver.
//
// # Coordinate System
//
// Coordinates follow the image convention used throughout this module:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Angles are measured counter-clockwise from +x in the mathematical sense of
// the endpoint deltas, so a segment whose second endpoint has a larger Y has an
// angle between 0 and 180 degrees even though it points down on screen.
//
// # Slopes
//
// Slope is a tagged value: either vertical or a finite number. There is no
// large sentinel standing in for infinity; Magnitude returns +Inf for vertical
// slopes so ordered comparisons keep working.
//
// # Classification
//
// IsVertical and IsHorizontal take an explicit Tolerance. The two predicates
// are not complementary: with the default tolerance of 1 a 45 degree line is
// both vertical and horizontal. Degenerate lines (P0 == P1) are neither.
// Thresholds are compared against |m| unless Tolerance.Signed is set.
//
// # Degeneracies
//
// Geometric degeneracies are reported, never panicked on:
//   - Intercept and Intersect return an ok flag
//   - Extend and PassingBy return ErrParallel
//   - PerpDistance returns 0 when a triangle leg has zero length
package geometry
